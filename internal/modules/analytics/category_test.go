package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferCategory(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Super Granules", "Granules"},
		{"Neem POWDER", "Powder"},
		{"Liquid Booster", "Liquids"},
		{"Hybrid Maize Seeds", "Seeds"},
		{"Urea 46%", "Fertilizers"},
		{"NPK 19-19-19", "Fertilizers"},
		{"Organic Compost", "Organic"},
		{"BioGrow Tonic", "Organic"},
		{"Chloro Insecticide", "Crop Protection"},
		{"Bio Granules", "Granules"},
		{"Tractor Oil", "General"},
		{"", "General"},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, InferCategory(tc.name), "product %q", tc.name)
	}
}
