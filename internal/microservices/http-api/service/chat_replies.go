package service

import (
	"math/rand"
	"strings"
)

// ReplyGenerator produces the character's answer to a reader message
type ReplyGenerator interface {
	Reply(message string) string
}

const (
	topicGreeting = "greeting"
	topicStory    = "story"
	topicQuestion = "question"
	topicGeneral  = "general"
)

var replyPools = map[string][]string{
	topicGreeting: {
		"안녕하세요! 저는 이 웹툰의 주인공입니다. 궁금한 점이 있으면 물어보세요!",
		"반가워요! 오늘은 어떤 이야기를 나누고 싶으신가요?",
		"안녕하세요! 제 이야기를 읽어주셔서 감사합니다.",
	},
	topicStory: {
		"이 장면에서 제가 느낀 감정은 정말 복잡했어요. 더 자세히 이야기해드릴게요.",
		"작가님이 이 부분을 그리실 때 특별히 신경 쓰신 부분이에요.",
		"이 에피소드는 제 인생의 전환점이었죠. 많은 고민 끝에 내린 결정이었어요.",
	},
	topicQuestion: {
		"흥미로운 질문이네요! 제 생각을 말씀드리자면...",
		"그 부분은 다음 에피소드에서 더 자세히 다뤄질 예정이에요!",
		"좋은 관찰이세요! 사실 그 장면에는 숨겨진 의미가 있어요.",
	},
	topicGeneral: {
		"더 자세히 알고 싶으시다면 다음 에피소드를 기대해주세요!",
		"저도 그 장면을 연기하면서 많은 생각이 들었어요.",
		"독자님의 해석이 정말 흥미롭네요! 저도 비슷한 생각을 했어요.",
	},
}

var (
	greetingWords = []string{"안녕", "하이", "hello", "hi"}
	storyWords    = []string{"이야기", "스토리", "줄거리", "story"}
	questionWords = []string{"왜", "어떻게", "무엇", "누가"}
)

// CannedReplies picks a line from a keyword-selected pool
type CannedReplies struct {
	// pick returns an index in [0, n)
	pick func(n int) int
}

func NewCannedReplies() *CannedReplies {
	return &CannedReplies{pick: rand.Intn}
}

func (g *CannedReplies) Reply(message string) string {
	pool := replyPools[replyTopic(message)]
	return pool[g.pick(len(pool))]
}

// replyTopic checks greeting, then story, then question keywords
func replyTopic(message string) string {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, greetingWords):
		return topicGreeting
	case containsAny(lower, storyWords):
		return topicStory
	case strings.Contains(message, "?") || containsAny(lower, questionWords):
		return topicQuestion
	default:
		return topicGeneral
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
