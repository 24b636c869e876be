package applog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLogger(t *testing.T) {
	t.Run("AppendsJSONLines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sessions.log")
		l, err := NewFileLogger(path)
		require.NoError(t, err)

		l.Log(Event{Kind: KindStarted, Project: "thesis"})
		l.Log(Event{Kind: KindStopped, Project: "thesis", SessionSeconds: 10, TotalSeconds: 42})
		require.NoError(t, l.Close())

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()

		var events []Event
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			var e Event
			require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
			events = append(events, e)
		}
		require.NoError(t, scanner.Err())

		require.Len(t, events, 2)
		assert.Equal(t, KindStarted, events[0].Kind)
		assert.False(t, events[0].Time.IsZero())
		assert.Equal(t, float64(42), events[1].TotalSeconds)
	})

	t.Run("AppendsAcrossReopens", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sessions.log")

		for i := 0; i < 2; i++ {
			l, err := NewFileLogger(path)
			require.NoError(t, err)
			l.Log(Event{Kind: KindOpened, Time: time.Now()})
			require.NoError(t, l.Close())
		}

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 2, countLines(data))
	})

	t.Run("CloseIsIdempotent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sessions.log")
		l, err := NewFileLogger(path)
		require.NoError(t, err)

		require.NoError(t, l.Close())
		require.NoError(t, l.Close())

		// Logging after close is dropped, not a panic.
		l.Log(Event{Kind: KindClosed})
	})
}

func countLines(data []byte) int {
	n := 0
	for _, b := range data {
		if b == '\n' {
			n++
		}
	}
	return n
}
