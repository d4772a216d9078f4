package parserpool_test

import (
	"sync"
	"testing"

	"github.com/herbolive/herbdb/pkg/parserpool"
	"github.com/stretchr/testify/assert"
)

// TestNewPool verifies pool creation with default and custom sizes.
func TestNewPool(t *testing.T) {
	for _, jobs := range []int{0, 1, 4} {
		pool := parserpool.NewPool(jobs)
		assert.NotNil(t, pool)

		res := pool.Parse("Plantago major")
		assert.True(t, res.Parsed)
		pool.Close()
	}
}

func TestParse(t *testing.T) {
	pool := parserpool.NewPool(2)
	defer pool.Close()

	tests := []struct {
		msg, input, canonical string
	}{
		{"simple", "Plantago major", "Plantago major"},
		{"author", "Plantago major L.", "Plantago major"},
		{"trinomial", "Rosa acicularis var. acicularis", "Rosa acicularis acicularis"},
	}

	for _, v := range tests {
		res := pool.Parse(v.input)
		assert.True(t, res.Parsed, v.msg)
		assert.Equal(t, v.canonical, res.Canonical.Simple, v.msg)
	}
}

func TestBinomial(t *testing.T) {
	pool := parserpool.NewPool(2)
	defer pool.Close()

	tests := []struct {
		msg, input     string
		genus, species string
		ok             bool
	}{
		{"binomial", "Rosa canina", "Rosa", "canina", true},
		{"author", "Quercus robur L.", "Quercus", "robur", true},
		{"infraspecies", "Rosa acicularis var. acicularis", "Rosa", "acicularis", true},
		{"uninomial", "Rosa", "", "", false},
		{"common name", "dog rose", "", "", false},
		{"empty", "", "", "", false},
	}

	for _, v := range tests {
		genus, species, ok := pool.Binomial(v.input)
		assert.Equal(t, v.ok, ok, v.msg)
		assert.Equal(t, v.genus, genus, v.msg)
		assert.Equal(t, v.species, species, v.msg)
	}
}

// TestParse_Concurrent verifies thread-safety with multiple goroutines.
func TestParse_Concurrent(t *testing.T) {
	pool := parserpool.NewPool(4)
	defer pool.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				genus, _, ok := pool.Binomial("Plantago major")
				assert.True(t, ok)
				assert.Equal(t, "Plantago", genus)
			}
		}()
	}
	wg.Wait()
}
