package otpcache

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue_ReturnsFourDigitCode(t *testing.T) {
	s := New(3 * time.Minute)
	code, err := s.Issue("order-1")
	require.NoError(t, err)
	assert.Len(t, code, 4)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}
}

func TestCheck_ConsumesOnMatch(t *testing.T) {
	s := New(3 * time.Minute)
	code, err := s.Issue("order-1")
	require.NoError(t, err)

	assert.True(t, s.Check("order-1", code))
	// single-use: the same code never verifies twice
	assert.False(t, s.Check("order-1", code))
}

func TestCheck_WrongCode_DoesNotConsume(t *testing.T) {
	s := New(3 * time.Minute)
	code, err := s.Issue("order-1")
	require.NoError(t, err)

	wrong := "0000"
	if wrong == code {
		wrong = "0001"
	}
	assert.False(t, s.Check("order-1", wrong))
	// still live: the correct code works afterwards
	assert.True(t, s.Check("order-1", code))
}

func TestCheck_AbsentSubject(t *testing.T) {
	s := New(3 * time.Minute)
	assert.False(t, s.Check("never-issued", "1234"))
}

func TestCheck_Expired(t *testing.T) {
	now := time.Now()
	s := New(3*time.Minute, WithClock(func() time.Time { return now }))

	code, err := s.Issue("order-1")
	require.NoError(t, err)

	now = now.Add(3*time.Minute + time.Second)
	assert.False(t, s.Check("order-1", code))
	// expired entry is gone, not resurrectable
	now = now.Add(-2 * time.Minute)
	assert.False(t, s.Check("order-1", code))
}

func TestCheck_JustWithinTTL(t *testing.T) {
	now := time.Now()
	s := New(3*time.Minute, WithClock(func() time.Time { return now }))

	code, err := s.Issue("order-1")
	require.NoError(t, err)

	now = now.Add(3 * time.Minute)
	assert.True(t, s.Check("order-1", code))
}

func TestIssue_OverwritesPriorCode(t *testing.T) {
	s := New(3 * time.Minute)
	first, err := s.Issue("order-1")
	require.NoError(t, err)
	second, err := s.Issue("order-1")
	require.NoError(t, err)

	if first != second {
		assert.False(t, s.Check("order-1", first))
	}
	assert.True(t, s.Check("order-1", second))
}

func TestClear_IsIdempotent(t *testing.T) {
	s := New(3 * time.Minute)
	code, err := s.Issue("order-1")
	require.NoError(t, err)

	s.Clear("order-1")
	s.Clear("order-1")
	assert.False(t, s.Check("order-1", code))
}

func TestSubjectsAreIndependent(t *testing.T) {
	s := New(3 * time.Minute)
	c1, err := s.Issue("order-1")
	require.NoError(t, err)
	c2, err := s.Issue("order-2")
	require.NoError(t, err)

	assert.True(t, s.Check("order-1", c1))
	assert.True(t, s.Check("order-2", c2))
}

func TestCheck_ConcurrentSameCode_ExactlyOneWinner(t *testing.T) {
	s := New(3 * time.Minute)
	code, err := s.Issue("order-1")
	require.NoError(t, err)

	const callers = 32
	var wins int64
	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer done.Done()
			start.Wait()
			if s.Check("order-1", code) {
				atomic.AddInt64(&wins, 1)
			}
		}()
	}
	start.Done()
	done.Wait()

	assert.Equal(t, int64(1), wins)
}
