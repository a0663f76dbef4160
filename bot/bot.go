// Package bot drains an in-memory FIFO queue of post templates on a fixed
// interval, publishing each through the ops package. It exists as the
// library's own consumer: failures on one post never stop the loop, because
// the write path reports them as data.
package bot

import (
	"context"
	"sync"
	"time"

	_log "github.com/hive-tools/hivekit/log"
	"github.com/hive-tools/hivekit/ops"
)

// DefaultInterval is how often the queue is polled when the config does not
// say otherwise.
const DefaultInterval = 5 * time.Minute

// Publisher is the slice of the ops package the bot calls. Tests substitute
// fakes.
type Publisher interface {
	CreatePost(ctx context.Context, post ops.PostData) (ops.Result, error)
	Upvote(ctx context.Context, author, permlink string,
		weight int16) (ops.Result, error)
}

// opsPublisher is the production Publisher, binding a client and credentials
// to the ops package funcs.
type opsPublisher struct {
	client ops.Client
	creds  ops.Credentials
}

func (p opsPublisher) CreatePost(ctx context.Context,
	post ops.PostData) (ops.Result, error) {
	return ops.CreatePost(ctx, p.client, p.creds, post)
}

func (p opsPublisher) Upvote(ctx context.Context, author, permlink string,
	weight int16) (ops.Result, error) {
	return ops.Upvote(ctx, p.client, p.creds, author, permlink, weight)
}

// Config configures a Bot.
type Config struct {
	Client      ops.Client
	Credentials ops.Credentials
	// Interval between queue pops. Defaults to DefaultInterval.
	Interval time.Duration
	// SelfVoteWeight, when positive, self-upvotes each successfully
	// published post with this weight in basis points.
	SelfVoteWeight int16
	// Publisher overrides the ops-backed publisher. Used by tests.
	Publisher Publisher
}

// Bot is a posting bot: idle until Start, then draining its queue once per
// interval until its context is cancelled or Stop is called.
type Bot struct {
	publisher Publisher
	username  string
	interval  time.Duration
	selfVote  int16
	log       _log.Log

	mu      sync.Mutex
	queue   []ops.PostData
	running bool
	stop    context.CancelFunc
	done    chan struct{}
}

// New returns an idle Bot.
func New(cfg Config) *Bot {
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = opsPublisher{client: cfg.Client, creds: cfg.Credentials}
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Bot{
		publisher: publisher,
		username:  cfg.Credentials.Username,
		interval:  interval,
		selfVote:  cfg.SelfVoteWeight,
		log:       _log.New("bot"),
	}
}

// Enqueue appends a post template to the queue. Safe to call whether or not
// the bot is running.
func (b *Bot) Enqueue(post ops.PostData) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue = append(b.queue, post)
}

// QueueLen returns the number of queued templates.
func (b *Bot) QueueLen() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// dequeue pops the oldest template. ok is false on an empty queue, which
// just means this tick idles.
func (b *Bot) dequeue() (post ops.PostData, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return ops.PostData{}, false
	}
	post = b.queue[0]
	b.queue = b.queue[1:]
	return post, true
}

// Start launches the processing loop and returns a channel that is closed
// once the loop has fully stopped. Starting a running bot returns the same
// done channel.
func (b *Bot) Start(ctx context.Context) <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		return b.done
	}
	ctx, cancel := context.WithCancel(ctx)
	b.running = true
	b.stop = cancel
	b.done = make(chan struct{})

	go b.run(ctx, b.done)
	return b.done
}

// Stop cancels the processing loop. It does not interrupt an in-flight
// publish; the loop exits at the next stop check. Stopping an idle or
// already-stopped bot is a no-op.
func (b *Bot) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.running {
		return
	}
	b.stop()
}

func (b *Bot) run(ctx context.Context, done chan struct{}) {
	defer func() {
		b.mu.Lock()
		b.running = false
		b.mu.Unlock()
		close(done)
	}()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		// Check the stop flag before popping so a queued template is
		// not lost to a publish that was never going to happen.
		if ctx.Err() != nil {
			return
		}
		if post, ok := b.dequeue(); ok {
			b.publish(ctx, post)
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (b *Bot) publish(ctx context.Context, post ops.PostData) {
	result, err := b.publisher.CreatePost(ctx, post)
	if err != nil {
		b.log.Errorf("create post %q: %v", post.Title, err)
		return
	}
	if !result.Success {
		b.log.Warnf("create post %q failed: %v", post.Title, result.Err)
		return
	}
	b.log.Infof("published %q as @%v/%v (tx %v)",
		post.Title, b.username, result.Permlink, result.TransactionID)

	if b.selfVote <= 0 {
		return
	}
	voteResult, err := b.publisher.Upvote(ctx, b.username, result.Permlink,
		b.selfVote)
	if err != nil {
		b.log.Errorf("self-vote %v: %v", result.Permlink, err)
		return
	}
	if !voteResult.Success {
		b.log.Warnf("self-vote %v failed: %v",
			result.Permlink, voteResult.Err)
	}
}
