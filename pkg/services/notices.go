package services

import (
	"errors"
	"sync"
	"time"

	"github.com/jmcrae/debitdesk/pkg/http"
)

// Auto-clear delays; success banners clear sooner than error banners.
const (
	SuccessNoticeTTL = 4 * time.Second
	ErrorNoticeTTL   = 8 * time.Second
)

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is one dismissible operator banner.
type Notice struct {
	ID      uint64
	Level   NoticeLevel
	Message string
}

// NoticeCenter converts outcomes and errors into operator-visible state.
// Notices auto-clear after a fixed delay and can be dismissed early; nothing
// here retries or propagates.
type NoticeCenter struct {
	mu      sync.Mutex
	seq     uint64
	notices []Notice

	successTTL time.Duration
	errorTTL   time.Duration
}

func NewNoticeCenter() *NoticeCenter {
	return &NoticeCenter{
		successTTL: SuccessNoticeTTL,
		errorTTL:   ErrorNoticeTTL,
	}
}

// Success posts a success notice.
func (n *NoticeCenter) Success(message string) uint64 {
	return n.post(NoticeSuccess, message, n.successTTL)
}

// Error posts an error notice.
func (n *NoticeCenter) Error(message string) uint64 {
	return n.post(NoticeError, message, n.errorTTL)
}

// ReportError posts the right banner for a failed call: backend-reported
// failures show the backend's message verbatim, transport failures show the
// wrapped error text.
func (n *NoticeCenter) ReportError(err error) uint64 {
	var backendErr *http.BackendError
	if errors.As(err, &backendErr) && backendErr.Message != "" {
		return n.Error(backendErr.Message)
	}
	return n.Error(err.Error())
}

func (n *NoticeCenter) post(level NoticeLevel, message string, ttl time.Duration) uint64 {
	n.mu.Lock()
	n.seq++
	id := n.seq
	n.notices = append(n.notices, Notice{ID: id, Level: level, Message: message})
	n.mu.Unlock()

	time.AfterFunc(ttl, func() {
		n.Dismiss(id)
	})
	return id
}

// Dismiss removes one notice; dismissing an already-cleared notice is a
// no-op.
func (n *NoticeCenter) Dismiss(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, notice := range n.notices {
		if notice.ID == id {
			n.notices = append(n.notices[:i], n.notices[i+1:]...)
			return
		}
	}
}

// Active returns the visible notices in posting order.
func (n *NoticeCenter) Active() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notice, len(n.notices))
	copy(out, n.notices)
	return out
}
