package bot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/hive-tools/hivekit/ops"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakePublisher records published posts and votes.
type fakePublisher struct {
	mu     sync.Mutex
	posts  []ops.PostData
	votes  []int16
	result func(post ops.PostData) (ops.Result, error)
}

func (p *fakePublisher) CreatePost(_ context.Context,
	post ops.PostData) (ops.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.posts = append(p.posts, post)
	if p.result != nil {
		return p.result(post)
	}
	return ops.Result{Success: true, Permlink: "p-" + post.Title}, nil
}

func (p *fakePublisher) Upvote(_ context.Context, author, permlink string,
	weight int16) (ops.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.votes = append(p.votes, weight)
	return ops.Result{Success: true}, nil
}

func (p *fakePublisher) published() []ops.PostData {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ops.PostData{}, p.posts...)
}

func (p *fakePublisher) voted() []int16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int16{}, p.votes...)
}

func newTestBot(p Publisher, selfVote int16) *Bot {
	return New(Config{
		Credentials:    ops.Credentials{Username: "alice"},
		Interval:       time.Millisecond,
		SelfVoteWeight: selfVote,
		Publisher:      p,
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition never met")
}

func TestBotPublishesFIFO(t *testing.T) {
	assert := assert.New(t)

	p := &fakePublisher{}
	b := newTestBot(p, 0)
	b.Enqueue(ops.PostData{Title: "first"})
	b.Enqueue(ops.PostData{Title: "second"})
	b.Enqueue(ops.PostData{Title: "third"})

	done := b.Start(context.Background())
	waitFor(t, func() bool { return len(p.published()) == 3 })
	b.Stop()
	<-done

	published := p.published()
	assert.Equal("first", published[0].Title)
	assert.Equal("second", published[1].Title)
	assert.Equal("third", published[2].Title)
	assert.Zero(b.QueueLen())
	assert.Empty(p.voted(), "no self-votes when weight is zero")
}

func TestBotContinuesPastFailures(t *testing.T) {
	assert := assert.New(t)

	p := &fakePublisher{}
	p.result = func(post ops.PostData) (ops.Result, error) {
		switch post.Title {
		case "broken":
			return ops.Result{Err: errors.New("rejected")}, nil
		case "fatal":
			return ops.Result{}, errors.New("bad key")
		}
		return ops.Result{Success: true, Permlink: "ok"}, nil
	}

	b := newTestBot(p, 0)
	b.Enqueue(ops.PostData{Title: "broken"})
	b.Enqueue(ops.PostData{Title: "fatal"})
	b.Enqueue(ops.PostData{Title: "good"})

	done := b.Start(context.Background())
	waitFor(t, func() bool { return len(p.published()) == 3 })
	b.Stop()
	<-done

	assert.Equal("good", p.published()[2].Title,
		"a failed publish must not stop the loop")
}

func TestBotSelfVote(t *testing.T) {
	assert := assert.New(t)

	p := &fakePublisher{}
	b := newTestBot(p, 500)
	b.Enqueue(ops.PostData{Title: "voted"})

	done := b.Start(context.Background())
	waitFor(t, func() bool { return len(p.voted()) == 1 })
	b.Stop()
	<-done

	assert.Equal([]int16{500}, p.voted())
}

func TestBotStopIdempotent(t *testing.T) {
	p := &fakePublisher{}
	b := newTestBot(p, 0)

	// Stopping an idle bot is a no-op.
	b.Stop()

	done := b.Start(context.Background())
	b.Stop()
	b.Stop()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not exit")
	}
	b.Stop()
}

func TestBotStartWhileRunning(t *testing.T) {
	assert := assert.New(t)

	p := &fakePublisher{}
	b := newTestBot(p, 0)

	done := b.Start(context.Background())
	assert.Equal(done, b.Start(context.Background()),
		"starting a running bot returns the same done channel")
	b.Stop()
	<-done
}

func TestBotRestart(t *testing.T) {
	p := &fakePublisher{}
	b := newTestBot(p, 0)

	done := b.Start(context.Background())
	b.Stop()
	<-done

	b.Enqueue(ops.PostData{Title: "after restart"})
	done = b.Start(context.Background())
	waitFor(t, func() bool { return len(p.published()) == 1 })
	b.Stop()
	<-done
}

func TestBotContextCancel(t *testing.T) {
	p := &fakePublisher{}
	b := newTestBot(p, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := b.Start(ctx)
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not exit on context cancellation")
	}
}

func TestBotQueueSurvivesStop(t *testing.T) {
	require := require.New(t)

	p := &fakePublisher{}
	p.result = func(ops.PostData) (ops.Result, error) {
		return ops.Result{Success: true, Permlink: "ok"}, nil
	}
	b := newTestBot(p, 0)

	done := b.Start(context.Background())
	waitFor(t, func() bool { return b.QueueLen() == 0 })
	b.Stop()
	<-done

	// Templates enqueued while stopped stay queued.
	b.Enqueue(ops.PostData{Title: "later"})
	require.Equal(1, b.QueueLen())
}
