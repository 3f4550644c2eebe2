package state

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"webtoonhub/cmd/cli/dto"
	"webtoonhub/internal/logging"
)

const (
	DefaultReplyDelay    = 1500 * time.Millisecond
	DefaultCharacterName = "주인공"
	DefaultReaderName    = "독자"
	DefaultGreeting      = "안녕하세요! 저는 이 웹툰의 주인공입니다. 궁금한 점이 있으면 물어보세요!"
)

var ErrChatClosed = errors.New("chat session closed")

// ChatAPI is the part of the HTTP client the chat needs
type ChatAPI interface {
	ListChatMessages(ctx context.Context, webtoonID int64) ([]dto.ChatMessage, error)
	SendChatMessage(ctx context.Context, request *dto.SendChatMessageRequest) (*dto.ChatMessage, error)
	MarkMessagesRead(ctx context.Context, ids []int64) (*dto.BatchReadResponse, error)
	UnreadCount(ctx context.Context, webtoonID int64) (int64, error)
}

type ChatOptions struct {
	// ReplyDelay is how long to wait after a send before refetching
	ReplyDelay    time.Duration
	ReaderName    string
	CharacterName string
	Greeting      string
	// OnChange gets a snapshot after every state transition
	OnChange func(ChatSnapshot)
	// OnError gets failures of background refetches
	OnError func(error)
	Logger  *slog.Logger
}

func (o *ChatOptions) withDefaults() {
	if o.ReplyDelay <= 0 {
		o.ReplyDelay = DefaultReplyDelay
	}
	if o.ReaderName == "" {
		o.ReaderName = DefaultReaderName
	}
	if o.CharacterName == "" {
		o.CharacterName = DefaultCharacterName
	}
	if o.Greeting == "" {
		o.Greeting = DefaultGreeting
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
}

// ChatEntry is a message as shown; Pending entries are not confirmed yet.
// Own marks lines sent through this session.
type ChatEntry struct {
	dto.ChatMessage
	Pending bool
	Own     bool
}

type ChatSnapshot struct {
	Messages    []ChatEntry
	Typing      bool
	UnreadCount int64
	// Character is who replies, for the typing indicator
	Character string
}

// ChatSession runs the send then delayed refetch cycle for one webtoon.
// Everything it starts is bound to its context; Close cancels it and results
// that arrive afterwards are dropped.
type ChatSession struct {
	api       ChatAPI
	webtoonID int64
	opts      ChatOptions

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	messages []ChatEntry
	own      map[int64]bool
	typing   bool
	unread   int64
	closed   bool
	nextTemp int64

	// refetchSeq orders refetches so an older response never overwrites a newer one
	refetchSeq uint64
	appliedSeq uint64
}

// OpenChat loads the history (posting the greeting into an empty chat) and
// the unread count.
func OpenChat(ctx context.Context, api ChatAPI, webtoonID int64, opts ChatOptions) (*ChatSession, error) {
	opts.withDefaults()
	sessionCtx, cancel := context.WithCancel(context.Background())
	s := &ChatSession{
		api:       api,
		webtoonID: webtoonID,
		opts:      opts,
		ctx:       sessionCtx,
		cancel:    cancel,
		own:       make(map[int64]bool),
	}

	messages, err := api.ListChatMessages(ctx, webtoonID)
	if err != nil {
		cancel()
		return nil, err
	}
	if len(messages) == 0 {
		greeting := &dto.SendChatMessageRequest{
			WebtoonID:  webtoonID,
			SenderType: dto.SenderCharacter,
			SenderName: opts.CharacterName,
			Message:    opts.Greeting,
		}
		if _, err := api.SendChatMessage(ctx, greeting); err != nil {
			cancel()
			return nil, err
		}
		if messages, err = api.ListChatMessages(ctx, webtoonID); err != nil {
			cancel()
			return nil, err
		}
	}

	unread, err := api.UnreadCount(ctx, webtoonID)
	if err != nil {
		cancel()
		return nil, err
	}

	s.mu.Lock()
	s.messages = s.confirmedLocked(messages)
	s.unread = unread
	s.mu.Unlock()
	s.notify()
	return s, nil
}

// Send posts text as the reader. Blank text does nothing. The message shows
// at once as pending; a failed post removes it again and returns the error.
func (s *ChatSession) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrChatClosed
	}
	s.nextTemp--
	tempID := s.nextTemp
	s.messages = append(s.messages, ChatEntry{
		ChatMessage: dto.ChatMessage{
			ID:         tempID,
			WebtoonID:  s.webtoonID,
			SenderType: dto.SenderUser,
			SenderName: s.opts.ReaderName,
			Message:    text,
			IsRead:     true,
			CreatedAt:  time.Now(),
		},
		Pending: true,
		Own:     true,
	})
	s.typing = true
	s.mu.Unlock()
	s.notify()

	sent, err := s.api.SendChatMessage(ctx, &dto.SendChatMessageRequest{
		WebtoonID:  s.webtoonID,
		SenderType: dto.SenderUser,
		SenderName: s.opts.ReaderName,
		Message:    text,
	})

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrChatClosed
	}
	if err != nil {
		s.removeEntry(tempID)
		s.typing = false
		s.mu.Unlock()
		s.notify()
		return err
	}
	s.confirmEntry(tempID, *sent)
	s.refetchSeq++
	seq := s.refetchSeq
	// registered under the lock so Close never waits before the add
	s.wg.Add(1)
	s.mu.Unlock()
	s.notify()

	s.scheduleRefetch(seq)
	return nil
}

// Snapshot copies the current state
func (s *ChatSession) Snapshot() ChatSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close cancels pending refetches and waits for them to stop. Safe to call twice.
func (s *ChatSession) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}

// Wait blocks until every scheduled refetch has finished
func (s *ChatSession) Wait() {
	s.wg.Wait()
}

// scheduleRefetch takes over a wg slot the caller already added
func (s *ChatSession) scheduleRefetch(seq uint64) {
	go func() {
		defer s.wg.Done()

		timer := time.NewTimer(s.opts.ReplyDelay)
		defer timer.Stop()
		select {
		case <-s.ctx.Done():
			return
		case <-timer.C:
		}

		if err := s.refetch(seq); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, ErrChatClosed) {
			s.opts.Logger.Debug("chat refetch failed", "webtoon_id", s.webtoonID, "error", err)
			s.mu.Lock()
			s.typing = false
			s.mu.Unlock()
			s.notify()
			if s.opts.OnError != nil {
				s.opts.OnError(err)
			}
		}
	}()
}

// refetch replaces the list wholesale, then marks unread character lines read
func (s *ChatSession) refetch(seq uint64) error {
	messages, err := s.api.ListChatMessages(s.ctx, s.webtoonID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed || s.ctx.Err() != nil {
		s.mu.Unlock()
		return ErrChatClosed
	}
	if seq < s.appliedSeq {
		s.mu.Unlock()
		return nil
	}
	s.appliedSeq = seq
	s.messages = s.confirmedLocked(messages)
	if seq == s.refetchSeq {
		s.typing = false
	}
	unreadIDs := unreadCharacterIDs(messages)
	if len(unreadIDs) > 0 {
		// shown as read once the call is issued, not when it is confirmed
		s.unread = 0
	}
	s.mu.Unlock()
	s.notify()

	if len(unreadIDs) == 0 {
		return nil
	}
	_, err = s.api.MarkMessagesRead(s.ctx, unreadIDs)
	return err
}

func (s *ChatSession) removeEntry(id int64) {
	for i, m := range s.messages {
		if m.ID == id && m.Pending {
			s.messages = append(s.messages[:i:i], s.messages[i+1:]...)
			return
		}
	}
}

func (s *ChatSession) confirmEntry(tempID int64, sent dto.ChatMessage) {
	for i, m := range s.messages {
		if m.ID == tempID && m.Pending {
			s.messages[i] = ChatEntry{ChatMessage: sent, Own: true}
			s.own[sent.ID] = true
			return
		}
	}
}

func (s *ChatSession) snapshotLocked() ChatSnapshot {
	messages := make([]ChatEntry, len(s.messages))
	copy(messages, s.messages)
	return ChatSnapshot{
		Messages:    messages,
		Typing:      s.typing,
		UnreadCount: s.unread,
		Character:   s.opts.CharacterName,
	}
}

func (s *ChatSession) notify() {
	if s.opts.OnChange == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.opts.OnChange(snap)
}

func (s *ChatSession) confirmedLocked(messages []dto.ChatMessage) []ChatEntry {
	out := make([]ChatEntry, 0, len(messages))
	for _, m := range messages {
		out = append(out, ChatEntry{ChatMessage: m, Own: s.own[m.ID]})
	}
	return out
}

func unreadCharacterIDs(messages []dto.ChatMessage) []int64 {
	var ids []int64
	for _, m := range messages {
		if m.SenderType == dto.SenderCharacter && !m.IsRead {
			ids = append(ids, m.ID)
		}
	}
	return ids
}
