package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	kferrors "github.com/keyforge-hd/keyforge/pkg/errors"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, kferrors.ExitSuccess, kferrors.ExitCode(nil))
	assert.Equal(t, kferrors.ExitInput, kferrors.ExitCode(kferrors.ErrInvalidMnemonic))
	assert.Equal(t, kferrors.ExitPolicy, kferrors.ExitCode(kferrors.ErrDuplicateName))
	assert.Equal(t, kferrors.ExitGeneral, kferrors.ExitCode(fmt.Errorf("boom")))
}

func TestWrapPreservesCode(t *testing.T) {
	wrapped := kferrors.Wrap(kferrors.ErrWalletNotFound, "looking up %q", "alice")
	assert.Equal(t, "WALLET_NOT_FOUND", kferrors.Code(wrapped))
	assert.Equal(t, kferrors.ExitNotFound, kferrors.ExitCode(wrapped))
}

func TestWithDetails(t *testing.T) {
	err := kferrors.WithDetails(kferrors.ErrDuplicateName, map[string]string{"name": "Main"})
	assert.Contains(t, err.Error(), "name: Main")
}

func TestIsMatchesByCode(t *testing.T) {
	wrapped := kferrors.Wrap(kferrors.ErrAccountNotFound, "during removal")
	assert.True(t, kferrors.Is(wrapped, kferrors.ErrAccountNotFound))
}
