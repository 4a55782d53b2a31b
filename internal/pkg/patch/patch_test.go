//go:build unit

package patch_test

import (
	"testing"

	"medoffice-booking/internal/pkg/patch"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	premium := "  premium "
	blank := "   "

	assert.Equal(t, "premium", patch.String(&premium, "standard"))
	assert.Equal(t, "standard", patch.String(&blank, "standard"))
	assert.Equal(t, "standard", patch.String(nil, "standard"))
}
