package usecase

import (
	"testing"

	"github.com/foodscan/backend/internal/domain"
)

func TestMapProductFeatures_Category(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want string
	}{
		{"beverage tag", []string{"en:sodas", "en:sugary-drinks"}, CategoryBeverage},
		{"dairy tag", []string{"en:fermented-milk-products"}, CategoryDairy},
		{"cereal tag", []string{"en:breakfast-cereals"}, CategoryCereal},
		{"ready meal tag", []string{"en:ready-made-meals"}, CategoryReadyMeal},
		{"no matching tag", []string{"en:chocolate-spreads"}, CategorySnack},
		{"no tags", nil, CategorySnack},
		{"first rule wins over later rules", []string{"en:milk-drinks"}, CategoryBeverage},
		{"case insensitive", []string{"EN:Dairy-Products"}, CategoryDairy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := &domain.ProductRecord{CategoryTags: tt.tags}
			got := MapProductFeatures(product, DefaultNovaGroup, DefaultSodiumToSalt)
			if got.Category != tt.want {
				t.Errorf("Category = %s, want %s", got.Category, tt.want)
			}
		})
	}
}

func TestMapProductFeatures_AllergenFlags(t *testing.T) {
	tests := []struct {
		name      string
		allergens []string
		traces    []string
		check     func(ProductFeatures) bool
		desc      string
	}{
		{
			name:      "gluten from allergens",
			allergens: []string{"en:gluten"},
			check:     func(f ProductFeatures) bool { return f.ContainsGluten },
			desc:      "ContainsGluten",
		},
		{
			name:   "peanut from traces",
			traces: []string{"en:peanuts"},
			check:  func(f ProductFeatures) bool { return f.ContainsPeanut },
			desc:   "ContainsPeanut",
		},
		{
			name:      "nut substring counts as peanut",
			allergens: []string{"en:nuts"},
			check:     func(f ProductFeatures) bool { return f.ContainsPeanut },
			desc:      "ContainsPeanut",
		},
		{
			name:      "dairy substring counts as milk",
			allergens: []string{"en:dairy"},
			check:     func(f ProductFeatures) bool { return f.ContainsMilk },
			desc:      "ContainsMilk",
		},
		{
			name:      "egg flag",
			allergens: []string{"en:eggs"},
			check:     func(f ProductFeatures) bool { return f.ContainsEgg },
			desc:      "ContainsEgg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := &domain.ProductRecord{AllergenTags: tt.allergens, TraceTags: tt.traces}
			got := MapProductFeatures(product, DefaultNovaGroup, DefaultSodiumToSalt)
			if !tt.check(got) {
				t.Errorf("%s = false, want true for allergens=%v traces=%v", tt.desc, tt.allergens, tt.traces)
			}
		})
	}

	t.Run("clean product has no flags", func(t *testing.T) {
		got := MapProductFeatures(&domain.ProductRecord{}, DefaultNovaGroup, DefaultSodiumToSalt)
		if got.ContainsGluten || got.ContainsPeanut || got.ContainsMilk || got.ContainsEgg {
			t.Errorf("flags = %+v, want all false", got)
		}
	})
}

func TestMapProductFeatures_Defaults(t *testing.T) {
	t.Run("unknown nova takes configured default", func(t *testing.T) {
		got := MapProductFeatures(&domain.ProductRecord{}, 4, DefaultSodiumToSalt)
		if got.NovaGroup != 4 {
			t.Errorf("NovaGroup = %d, want default 4", got.NovaGroup)
		}

		got = MapProductFeatures(&domain.ProductRecord{}, 2, DefaultSodiumToSalt)
		if got.NovaGroup != 2 {
			t.Errorf("NovaGroup = %d, want overridden default 2", got.NovaGroup)
		}
	})

	t.Run("reported nova passes through", func(t *testing.T) {
		got := MapProductFeatures(&domain.ProductRecord{NovaGroup: 1}, 4, DefaultSodiumToSalt)
		if got.NovaGroup != 1 {
			t.Errorf("NovaGroup = %d, want 1", got.NovaGroup)
		}
	})

	t.Run("salt derived from sodium via conversion factor", func(t *testing.T) {
		product := &domain.ProductRecord{
			Nutrition: domain.NutritionProfile{Sodium: 0.6},
		}
		got := MapProductFeatures(product, DefaultNovaGroup, 2.5)
		if got.Salt != 1.5 {
			t.Errorf("Salt = %v, want 1.5 (0.6 * 2.5)", got.Salt)
		}
	})
}

func TestMapUserFeatures(t *testing.T) {
	user := &domain.UserProfile{
		HasDiabetes:    true,
		PeanutAllergy:  true,
		GoalMuscleGain: true,
		HeartDisease:   true, // not consumed by the scorer
		SoyAllergy:     true, // not consumed by the scorer
	}

	got := MapUserFeatures(user)

	if !got.HasDiabetes || !got.PeanutAllergy || !got.GoalMuscleGain {
		t.Errorf("features = %+v, want set flags copied", got)
	}
	if got.HasHypertension || got.GlutenIntolerance || got.GoalWeightLoss {
		t.Errorf("features = %+v, want unset flags false", got)
	}
}

func TestFeatureRow(t *testing.T) {
	pf := ProductFeatures{
		Category:     CategoryDairy,
		Sugar:        12,
		NovaGroup:    3,
		ContainsMilk: true,
	}
	uf := UserFeatures{LactoseIntolerance: true}

	row := featureRow(pf, uf)

	if row["sugar_100g"] != 12 {
		t.Errorf("sugar_100g = %v, want 12", row["sugar_100g"])
	}
	if row["nova_group"] != 3 {
		t.Errorf("nova_group = %v, want 3", row["nova_group"])
	}
	if row["contains_milk"] != 1 || row["lactose_intolerance"] != 1 {
		t.Errorf("binary flags not coerced to 1: %v", row)
	}
	if row["contains_egg"] != 0 {
		t.Errorf("contains_egg = %v, want 0", row["contains_egg"])
	}
	if len(row) != 21 {
		t.Errorf("row has %d columns, want 21", len(row))
	}
}
