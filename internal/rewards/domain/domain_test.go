package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEcoLevelForPoints(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name          string
		points        int
		expectedLevel string
	}

	tests := []testCase{
		{name: "zero points", points: 0, expectedLevel: LevelNewbie},
		{name: "start balance", points: StartBalance, expectedLevel: LevelNewbie},
		{name: "just below beginner", points: 99, expectedLevel: LevelNewbie},
		{name: "beginner threshold", points: 100, expectedLevel: LevelBeginner},
		{name: "enthusiast threshold", points: 200, expectedLevel: LevelEnthusiast},
		{name: "just below warrior", points: 499, expectedLevel: LevelEnthusiast},
		{name: "warrior threshold", points: 500, expectedLevel: LevelWarrior},
		{name: "master threshold", points: 1000, expectedLevel: LevelMaster},
		{name: "far above master", points: 123456, expectedLevel: LevelMaster},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expectedLevel, EcoLevelForPoints(tt.points))
		})
	}
}

func TestParseMaterial(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name             string
		raw              string
		expectedMaterial Material
		expectedOk       bool
	}

	tests := []testCase{
		{name: "plastic lowercase", raw: "plastic", expectedMaterial: MaterialPlastic, expectedOk: true},
		{name: "metal uppercase", raw: "METAL", expectedMaterial: MaterialMetal, expectedOk: true},
		{name: "mixed case with spaces", raw: "  Non-Recycle ", expectedMaterial: MaterialNonRecycle, expectedOk: true},
		{name: "unknown material", raw: "glass", expectedOk: false},
		{name: "empty string", raw: "", expectedOk: false},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			material, ok := ParseMaterial(tt.raw)
			assert.Equal(t, tt.expectedOk, ok)
			if tt.expectedOk {
				assert.Equal(t, tt.expectedMaterial, material)
			}
		})
	}
}

func TestParseEntryKind(t *testing.T) {
	t.Parallel()

	kind, ok := ParseEntryKind("Transfer_In")
	assert.True(t, ok)
	assert.Equal(t, KindTransferIn, kind)

	_, ok = ParseEntryKind("withdrawal")
	assert.False(t, ok)
}

func TestDisplayForKind(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name            string
		kind            EntryKind
		expectedDisplay KindDisplay
	}

	tests := []testCase{
		{
			name:            "scan",
			kind:            KindScan,
			expectedDisplay: KindDisplay{Icon: "recycle", Color: "green", Label: "QR Scan"},
		},
		{
			name:            "transfer in",
			kind:            KindTransferIn,
			expectedDisplay: KindDisplay{Icon: "arrow-down", Color: "blue", Label: "Points Received"},
		},
		{
			name:            "transfer out",
			kind:            KindTransferOut,
			expectedDisplay: KindDisplay{Icon: "arrow-up", Color: "orange", Label: "Points Sent"},
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expectedDisplay, DisplayForKind(tt.kind))
		})
	}
}

func TestMaterialLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Plastic", MaterialPlastic.Label())
	assert.Equal(t, "Metal", MaterialMetal.Label())
	assert.Equal(t, "Non-Recyclable", MaterialNonRecycle.Label())
	assert.Equal(t, "", Material("glass").Label())
}

func TestUserFullName(t *testing.T) {
	t.Parallel()

	user := User{FirstName: "Abebe", LastName: "Bikila"}
	assert.Equal(t, "Abebe Bikila", user.FullName())
}
