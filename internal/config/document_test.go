package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewDocumentConfigHolderFallsBackToDefaults(t *testing.T) {
	holder, err := NewDocumentConfigHolder(zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, DefaultDocumentConfig(), holder.Get())
}

func TestValidateDocumentConfig(t *testing.T) {
	assert.NoError(t, validateDocumentConfig(DefaultDocumentConfig()))
	assert.Error(t, validateDocumentConfig(DocumentConfig{ValidityDays: -1}))
}
