package icons

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want Key
	}{
		{name: "registered key", key: "food", want: Food},
		{name: "unknown key falls back", key: "spaceship", want: Other},
		{name: "empty key falls back", key: "", want: Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.key).Key)
		})
	}
}

func TestAll(t *testing.T) {
	all := All()
	assert.Len(t, all, len(registry))
	assert.Equal(t, Food, all[0].Key)
	assert.Equal(t, Other, all[len(all)-1].Key)
	for _, icon := range all {
		assert.NotEmpty(t, icon.Glyph, icon.Key)
	}
}
