package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcomandos(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"up", "down", "version"}, names)
	require.NotNil(t, root.PersistentFlags().Lookup("dsn"))
}

func TestRootCmd_RechazaArgumentosExtra(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"up", "extra"})
	err := root.Execute()
	assert.Error(t, err)
}
