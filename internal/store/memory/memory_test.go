package memory

import (
	"testing"

	"github.com/erazemk/shramba/internal/store"
	"github.com/erazemk/shramba/internal/store/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}
