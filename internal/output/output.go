package output

import (
	"fmt"
	"io"
	"time"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) RecordingStarted() {
	fmt.Fprintf(f.w, "🎙️  Recording... press Ctrl+C to stop\n")
}

func (f *Formatter) RecordingStopped(duration time.Duration) {
	fmt.Fprintf(f.w, "⏹️  Recording stopped (%s)\n", formatDuration(duration))
}

func (f *Formatter) Uploading() {
	fmt.Fprintf(f.w, "⬆️  Uploading recording...\n")
}

func (f *Formatter) Uploaded(id, title string) {
	fmt.Fprintf(f.w, "✅ Recording saved: %s (%s)\n", title, id)
}

func (f *Formatter) ProcessingStarted(kind string) {
	fmt.Fprintf(f.w, "🤖 Processing (%s)...\n", kind)
}

func (f *Formatter) ProcessingDone(kind string) {
	fmt.Fprintf(f.w, "✅ Processing complete: %s\n", kind)
}

func (f *Formatter) ProcessingFailed(kind string, err error) {
	fmt.Fprintf(f.w, "❌ Processing failed (%s): %v\n", kind, err)
}

func (f *Formatter) LoggedIn(name, email string) {
	fmt.Fprintf(f.w, "✅ Logged in as %s <%s>\n", name, email)
}

func (f *Formatter) LoggedOut() {
	fmt.Fprintf(f.w, "✅ Logged out\n")
}

func (f *Formatter) UserProfile(name, email, subscription string) {
	fmt.Fprintf(f.w, "👤 %s <%s> (%s)\n", name, email, subscription)
}

func (f *Formatter) ReferralInfo(code string, discount, monthly float64) {
	fmt.Fprintf(f.w, "🎁 Referral code: %s (discount €%.2f, monthly €%.2f)\n", code, discount, monthly)
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) RecordingListHeader(cached bool) {
	if cached {
		fmt.Fprintf(f.w, "📼 Recordings (cached):\n\n")
		return
	}
	fmt.Fprintf(f.w, "📼 Recordings:\n\n")
}

func (f *Formatter) RecordingListItem(id, title, status string, duration time.Duration, hasTranscript, hasSummary bool) {
	marker := ""
	if hasTranscript && hasSummary {
		marker = " ✅"
	} else if hasTranscript || hasSummary {
		marker = " 📝"
	}
	fmt.Fprintf(f.w, "  %s  %-30s %-10s %s%s\n", id, title, status, formatDuration(duration), marker)
}

func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  ✅ %s: %s\n", name, detail)
	} else {
		fmt.Fprintf(f.w, "  ❌ %s: %s\n", name, detail)
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
