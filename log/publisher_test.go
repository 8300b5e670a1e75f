package log_test

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/elevconf/log"
)

// drain closes pub and collects everything left on sub.
func drain(t *testing.T, pub *log.Publisher, sub *log.Subscription) []string {
	t.Helper()

	require.NoError(t, pub.Close())

	var got []string
	for entry := range sub.C() {
		got = append(got, string(entry))
	}

	return got
}

func writeAll(t *testing.T, pub *log.Publisher, entries ...string) {
	t.Helper()

	for _, e := range entries {
		n, err := pub.Write([]byte(e))
		require.NoError(t, err)
		require.Equal(t, len(e), n)
	}
}

func TestWithBufferSize(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		opts []log.PublisherOption
		want int
	}{
		"default":  {want: 64},
		"custom":   {opts: []log.PublisherOption{log.WithBufferSize(16)}, want: 16},
		"zero":     {opts: []log.PublisherOption{log.WithBufferSize(0)}, want: 1},
		"negative": {opts: []log.PublisherOption{log.WithBufferSize(-3)}, want: 1},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			sub := log.NewPublisher(tc.opts...).Subscribe()
			defer sub.Close()

			assert.Equal(t, tc.want, cap(sub.C()))
		})
	}
}

func TestPublisherFanOut(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher()
	subs := []*log.Subscription{pub.Subscribe(), pub.Subscribe(), pub.Subscribe()}

	entry := []byte("loaded settings.yml")
	writeAll(t, pub, string(entry))

	n, err := pub.Write(entry)
	require.NoError(t, err)
	assert.Equal(t, len(entry), n)

	entry[0] = 'X'

	for _, sub := range subs {
		assert.Equal(t, []string{"loaded settings.yml", "loaded settings.yml"}, drain(t, pub, sub))
	}
}

func TestPublisherDropsOldest(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		size   int
		writes []string
		want   []string
	}{
		"under capacity": {size: 4, writes: []string{"a", "b"}, want: []string{"a", "b"}},
		"at capacity":    {size: 2, writes: []string{"a", "b"}, want: []string{"a", "b"}},
		"over capacity":  {size: 2, writes: []string{"a", "b", "c", "d", "e"}, want: []string{"d", "e"}},
		"single slot":    {size: 1, writes: []string{"a", "b", "c"}, want: []string{"c"}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pub := log.NewPublisher(log.WithBufferSize(tc.size))
			sub := pub.Subscribe()
			writeAll(t, pub, tc.writes...)

			assert.Equal(t, tc.want, drain(t, pub, sub))
		})
	}
}

func TestSubscriptionClose(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher()
	closed := pub.Subscribe()
	open := pub.Subscribe()

	writeAll(t, pub, "first")

	closed.Close()
	closed.Close()

	writeAll(t, pub, "second")

	// The next write after Close releases the channel; buffered entries stay
	// readable.
	var got []string
	for entry := range closed.C() {
		got = append(got, string(entry))
	}

	assert.Equal(t, []string{"first"}, got)
	assert.Equal(t, []string{"first", "second"}, drain(t, pub, open))
}

func TestPublisherClose(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher(log.WithHistory(4))
	before := pub.Subscribe()

	require.NoError(t, pub.Close())
	require.NoError(t, pub.Close())

	writeAll(t, pub, "ignored")

	_, ok := <-before.C()
	assert.False(t, ok)

	after := pub.Subscribe()
	_, ok = <-after.C()
	assert.False(t, ok)

	assert.Empty(t, pub.History())
}

func TestPublisherHistory(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		opts   []log.PublisherOption
		writes []string
		want   []string
	}{
		"disabled by default": {
			writes: []string{"a", "b"},
		},
		"replays everything retained": {
			opts:   []log.PublisherOption{log.WithHistory(4)},
			writes: []string{"a", "b"},
			want:   []string{"a", "b"},
		},
		"keeps newest": {
			opts:   []log.PublisherOption{log.WithHistory(2)},
			writes: []string{"a", "b", "c"},
			want:   []string{"b", "c"},
		},
		"replay bounded by buffer": {
			opts:   []log.PublisherOption{log.WithHistory(3), log.WithBufferSize(1)},
			writes: []string{"a", "b", "c"},
			want:   []string{"c"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pub := log.NewPublisher(tc.opts...)
			for _, w := range tc.writes {
				_, err := pub.Write([]byte(w))
				require.NoError(t, err)
			}

			sub := pub.Subscribe()
			require.NoError(t, pub.Close())

			var got []string
			for entry := range sub.C() {
				got = append(got, string(entry))
			}

			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("history is a copy", func(t *testing.T) {
		t.Parallel()

		pub := log.NewPublisher(log.WithHistory(2))
		_, err := pub.Write([]byte("kept"))
		require.NoError(t, err)

		h := pub.History()
		require.Len(t, h, 1)

		h[0] = []byte("changed")
		assert.Equal(t, "kept", string(pub.History()[0]))
	})
}

func TestPublisherConcurrency(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher(log.WithBufferSize(8), log.WithHistory(16))

	var wg sync.WaitGroup

	for w := range 4 {
		wg.Go(func() {
			for i := range 100 {
				//nolint:errcheck // Write never fails.
				pub.Write(fmt.Appendf(nil, "writer %d entry %d", w, i))
			}
		})
	}

	for range 4 {
		wg.Go(func() {
			sub := pub.Subscribe()
			defer sub.Close()

			for range 25 {
				select {
				case <-sub.C():
				default:
				}
			}
		})
	}

	wg.Wait()

	assert.Len(t, pub.History(), 16)
	require.NoError(t, pub.Close())
}

func TestPublisherWithHandler(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		format log.Format
		want   string
	}{
		"json":   {format: log.FormatJSON, want: `"path":"elevators.DEFAULT.settings.maxDistance"`},
		"logfmt": {format: log.FormatLogfmt, want: "path=elevators.DEFAULT.settings.maxDistance"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pub := log.NewPublisher()
			t.Cleanup(func() { require.NoError(t, pub.Close()) })

			sub := pub.Subscribe()
			logger := slog.New(log.NewHandler(pub, log.LevelInfo, tc.format))

			logger.Warn("invalid setting", slog.String("path", "elevators.DEFAULT.settings.maxDistance"))
			logger.Debug("filtered")

			got := string(<-sub.C())
			assert.Contains(t, got, "invalid setting")
			assert.Contains(t, got, tc.want)

			select {
			case entry := <-sub.C():
				t.Fatalf("unexpected entry %q", entry)
			default:
			}
		})
	}
}
