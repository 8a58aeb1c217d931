package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsFlagsDefaultFromConfig(t *testing.T) {
	for name, cmd := range map[string]func() *cobra.Command{
		"sentiment": newSentimentCmd,
		"report":    newReportCmd,
	} {
		flags := cmd().Flags()

		limit := flags.Lookup("limit")
		require.NotNil(t, limit, name)
		assert.Equal(t, "0", limit.DefValue, name)

		sort := flags.Lookup("sort")
		require.NotNil(t, sort, name)
		assert.Equal(t, "", sort.DefValue, name)
	}
}
