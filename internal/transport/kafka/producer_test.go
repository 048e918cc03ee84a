package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"

	"getmystuff-courier/internal/apperr"
	"getmystuff-courier/internal/domain"
	"getmystuff-courier/internal/logx"
	"getmystuff-courier/internal/service/trips"
	testlog "getmystuff-courier/internal/testutil"
)

var posted = trips.PostedEvent{
	TripID:      "trip-1",
	Traveler:    "u1",
	From:        "New Delhi",
	To:          "London",
	DepartureAt: time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC),
	Categories:  []domain.Category{domain.CategoryDocuments, domain.CategoryElectronics},
	TotalKg:     5,
}

func TestProducer_PublishTripPosted_EncodesEvent(t *testing.T) {
	t.Parallel()

	sp := mocks.NewSyncProducer(t, nil)
	defer func() { require.NoError(t, sp.Close()) }()

	sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var dto TripPostedDTO
		if err := json.Unmarshal(val, &dto); err != nil {
			return err
		}
		if dto.Event != EventTripPosted || dto.TripID != "trip-1" || dto.To != "London" {
			return errors.New("unexpected payload")
		}
		if len(dto.Categories) != 2 || dto.Categories[0] != "Documents" {
			return errors.New("unexpected categories")
		}
		return nil
	})

	p := &Producer{producer: sp, topic: "trips", logger: logx.Nop()}
	require.NoError(t, p.PublishTripPosted(context.Background(), posted))
}

func TestProducer_PublishTripPosted_PropagatesError(t *testing.T) {
	t.Parallel()

	sp := mocks.NewSyncProducer(t, nil)
	defer func() { require.NoError(t, sp.Close()) }()
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := &Producer{producer: sp, topic: "trips", logger: logx.Nop()}
	require.ErrorIs(t, p.PublishTripPosted(context.Background(), posted), sarama.ErrOutOfBrokers)
}

func TestNewProducer_SkipsWhenNoKafkaConfig(t *testing.T) {
	t.Parallel()

	p, err := NewProducer(nil, nil, "trips")
	require.NoError(t, err)
	require.Nil(t, p)
	require.NoError(t, p.Close())

	p, err = NewProducer(nil, []string{"b:9092"}, " ")
	require.NoError(t, err)
	require.Nil(t, p)
}

type publisherFunc func(context.Context, trips.PostedEvent) error

func (f publisherFunc) PublishTripPosted(ctx context.Context, e trips.PostedEvent) error {
	return f(ctx, e)
}

type counterStub struct{ n int64 }

func (c *counterStub) Inc() { atomic.AddInt64(&c.n, 1) }

func TestRetryingPublisher_RetriesTransientThenSucceeds(t *testing.T) {
	t.Parallel()

	var calls int32
	next := publisherFunc(func(context.Context, trips.PostedEvent) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return sarama.ErrNotLeaderForPartition
		}
		return nil
	})
	ctr := &counterStub{}
	rec := testlog.New()
	p := NewRetryingPublisher(next, rec.Logger(), ctr, RetryConfig{MaxAttempts: 5})

	require.NoError(t, p.PublishTripPosted(context.Background(), posted))
	require.EqualValues(t, 3, atomic.LoadInt32(&calls))
	require.EqualValues(t, 2, atomic.LoadInt64(&ctr.n))
	require.True(t, rec.Has("trip event publish retry"))
}

func TestRetryingPublisher_StopsOnPermanent(t *testing.T) {
	t.Parallel()

	calls := 0
	sentinel := errors.New("encode")
	next := publisherFunc(func(context.Context, trips.PostedEvent) error {
		calls++
		return Permanent(sentinel)
	})
	p := NewRetryingPublisher(next, nil, nil, RetryConfig{MaxAttempts: 5})

	err := p.PublishTripPosted(context.Background(), posted)
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 1, calls)
}

func TestRetryingPublisher_GivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	next := publisherFunc(func(context.Context, trips.PostedEvent) error {
		calls++
		return &sarama.ProducerError{Err: sarama.ErrRequestTimedOut}
	})
	p := NewRetryingPublisher(next, nil, nil, RetryConfig{MaxAttempts: 3})

	require.Error(t, p.PublishTripPosted(context.Background(), posted))
	require.Equal(t, 3, calls)
}

func TestRetryingPublisher_RespectsContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	next := publisherFunc(func(context.Context, trips.PostedEvent) error {
		calls++
		cancel()
		return sarama.ErrOutOfBrokers
	})
	p := NewRetryingPublisher(next, nil, nil, RetryConfig{MaxAttempts: 5, BaseDelay: time.Hour, MaxDelay: time.Hour})

	require.ErrorIs(t, p.PublishTripPosted(ctx, posted), sarama.ErrOutOfBrokers)
	require.Equal(t, 1, calls)
}

func TestNewRetryingPublisher_NilNext(t *testing.T) {
	t.Parallel()
	require.Nil(t, NewRetryingPublisher(nil, nil, nil, RetryConfig{}))
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	require.Equal(t, 100*time.Millisecond, backoff(100*time.Millisecond, time.Second, 1))
	require.Equal(t, 400*time.Millisecond, backoff(100*time.Millisecond, time.Second, 3))
	require.Equal(t, time.Second, backoff(100*time.Millisecond, time.Second, 5))

	for _, attempt := range []int{40, 64, 65, 1000} {
		require.Equal(t, time.Second, backoff(150*time.Millisecond, time.Second, attempt), "attempt %d", attempt)
	}
	require.Zero(t, backoff(0, time.Second, 3))
}

func TestIsPermanent(t *testing.T) {
	t.Parallel()

	require.True(t, IsPermanent(Permanent(errors.New("x"))))
	require.True(t, IsPermanent(fmt.Errorf("wrap: %w", apperr.ErrInvalid)))
	require.False(t, IsPermanent(sarama.ErrOutOfBrokers))
	require.Contains(t, Permanent(errors.New("bad payload")).Error(), "bad payload")
}
