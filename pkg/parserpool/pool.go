// Package parserpool provides a pool of botanical gnparser instances for
// concurrent name parsing. This is a pure package, parsing is computation,
// not I/O.
package parserpool

import (
	"runtime"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides a pool of gnparser instances for concurrent parsing of
// plant names.
type Pool interface {
	// Parse parses a scientific name string with the botanical code.
	// It retrieves a parser from the pool, parses the name, and returns
	// the parser to the pool. This method is safe for concurrent use.
	Parse(nameString string) parsed.Parsed

	// Binomial returns genus and specific epithet of a name. The result is
	// false when the name is not parsed or has no species.
	Binomial(nameString string) (genus, species string, ok bool)

	// Close shuts down the parser pool and releases resources.
	// After calling Close, the pool should not be used.
	Close()
}

// PoolImpl implements the Pool interface using gnparser.NewPool.
type PoolImpl struct {
	ch       chan gnparser.GNparser
	poolSize int
}

// NewPool creates a new parser pool with the specified number of workers.
// If jobsNum is 0, it defaults to runtime.NumCPU().
func NewPool(jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig(
		gnparser.OptCode(nomcode.Botanical),
		gnparser.OptWithDetails(true),
	)
	ch := gnparser.NewPool(cfg, poolSize)

	return &PoolImpl{
		ch:       ch,
		poolSize: poolSize,
	}
}

// Parse parses a name with a parser from the pool.
func (p *PoolImpl) Parse(nameString string) parsed.Parsed {
	// blocks if all parsers are busy
	parser := <-p.ch
	result := parser.ParseName(nameString)
	p.ch <- parser

	return result
}

// Binomial takes the first two words of the simple canonical form.
// Infraspecific ranks are ignored.
func (p *PoolImpl) Binomial(nameString string) (string, string, bool) {
	res := p.Parse(nameString)
	if !res.Parsed || res.Canonical == nil || res.Cardinality < 2 {
		return "", "", false
	}

	words := strings.Fields(res.Canonical.Simple)
	if len(words) < 2 {
		return "", "", false
	}
	return words[0], words[1], true
}

// Close shuts down the parser pool.
// It closes the channel and drains any remaining parsers.
func (p *PoolImpl) Close() {
	if p.ch != nil {
		close(p.ch)
		for range p.ch {
		}
	}
}
