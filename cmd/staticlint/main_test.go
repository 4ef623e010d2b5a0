package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/tools/go/analysis/analysistest"
)

func TestEnvelopeAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), EnvelopeAnalyzer, "example.com/api", "example.com/internal/models")
}

func TestOsExitAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), OsExitAnalyzer, "osexit")
}

func TestAnalyzers(t *testing.T) {
	suite := analyzers()

	names := make(map[string]int, len(suite))
	for _, a := range suite {
		names[a.Name]++
	}

	for name, n := range names {
		assert.Equal(t, 1, n, "analyzer %s registered more than once", name)
	}
	for _, name := range []string{"printf", "SA1000", "ST1005", "QF1001", "osexitlint", "envelopelint"} {
		assert.Contains(t, names, name)
	}
	assert.NotContains(t, names, "ST1000")
}
