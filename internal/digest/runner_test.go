// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// --- fakes ---

type memStore struct {
	sent    types.SentSet
	saves   int
	loadErr error
	saveErr error
}

func (m *memStore) Load(context.Context) (types.SentSet, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.sent.Clone(), nil
}

func (m *memStore) Save(_ context.Context, sent types.SentSet) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.sent = sent.Clone()
	return nil
}

type recordingMailer struct {
	sent []types.MailMessage
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg types.MailMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newTestRunner(src Source, store *memStore, mailer *recordingMailer) *Runner {
	return &Runner{
		Config: types.DigestConfig{
			Categories:  []string{"cs.LG"},
			Keywords:    []string{"graph"},
			Recipient:   "reader@example.com",
			RecencyDays: 8,
			SendEmpty:   true,
		},
		Source: src,
		Store:  store,
		Mailer: mailer,
		Now:    func() time.Time { return testNow },
	}
}

func twoEntrySource() *fakeSource {
	return newFakeSource(map[string][]types.RawRecord{
		"cs.LG": {rawRecord("2610.00001", day), rawRecord("2610.00002", 2*day)},
	})
}

// --- tests ---

func TestRunSendsThenSaves(t *testing.T) {
	store := &memStore{sent: types.NewSentSet(absID("2501.00001"))}
	mailer := &recordingMailer{}
	r := newTestRunner(twoEntrySource(), store, mailer)

	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.Sent)
	assert.NotEmpty(t, summary.RunID)
	assert.Len(t, summary.Entries, 2)

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "reader@example.com", msg.To)
	assert.Equal(t, DefaultSubject, msg.Subject)
	assert.Equal(t, summary.HTML, msg.HTML)
	assert.Equal(t, summary.RunID, msg.RunID)

	assert.Equal(t, 1, store.saves)
	assert.Equal(t,
		[]string{absID("2501.00001"), absID("2610.00001"), absID("2610.00002")},
		store.sent.Sorted())
}

func TestRunSecondRunSendsNothingNew(t *testing.T) {
	store := &memStore{sent: types.SentSet{}}
	mailer := &recordingMailer{}
	src := twoEntrySource()

	_, err := newTestRunner(src, store, mailer).Run(context.Background())
	require.NoError(t, err)
	after := store.sent.Clone()

	summary, err := newTestRunner(src, store, mailer).Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, summary.Entries)
	assert.Contains(t, summary.HTML, NoReadingsMessage)
	assert.Len(t, mailer.sent, 2, "empty digest is still mailed when send_empty is set")
	assert.Equal(t, after, store.sent)
}

func TestRunSendFailureLeavesStoreUntouched(t *testing.T) {
	store := &memStore{sent: types.NewSentSet(absID("2501.00001"))}
	mailer := &recordingMailer{err: errors.New("503 service unavailable")}
	r := newTestRunner(twoEntrySource(), store, mailer)

	summary, err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending digest")

	assert.False(t, summary.Sent)
	assert.Equal(t, 0, store.saves)
	assert.Equal(t, []string{absID("2501.00001")}, store.sent.Sorted())
}

func TestRunDryRunNeitherSendsNorSaves(t *testing.T) {
	store := &memStore{sent: types.SentSet{}}
	mailer := &recordingMailer{}
	r := newTestRunner(twoEntrySource(), store, mailer)
	r.DryRun = true

	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, summary.Sent)
	assert.Len(t, summary.Entries, 2)
	assert.Contains(t, summary.HTML, "Paper 2610.00001")
	assert.Empty(t, mailer.sent)
	assert.Equal(t, 0, store.saves)
}

func TestRunSkipsEmptyDigestWhenConfigured(t *testing.T) {
	store := &memStore{sent: types.SentSet{}}
	mailer := &recordingMailer{}
	r := newTestRunner(twoEntrySource(), store, mailer)
	r.Config.Keywords = []string{"nonexistentkeyword"}
	r.Config.SendEmpty = false

	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, summary.Sent)
	assert.Empty(t, mailer.sent)
	assert.Equal(t, 0, store.saves)
}

func TestRunCustomSubject(t *testing.T) {
	mailer := &recordingMailer{}
	r := newTestRunner(twoEntrySource(), &memStore{}, mailer)
	r.Config.Mail.Subject = "Morning papers"

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Morning papers", mailer.sent[0].Subject)
}

func TestRunLoadFailureAborts(t *testing.T) {
	mailer := &recordingMailer{}
	r := newTestRunner(twoEntrySource(), &memStore{loadErr: errors.New("disk gone")}, mailer)

	_, err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading sent-set")
	assert.Empty(t, mailer.sent)
}

func TestRunBuildFailureSendsNothing(t *testing.T) {
	src := twoEntrySource()
	src.errs["cs.LG"] = errors.New("listing unavailable")
	store := &memStore{sent: types.SentSet{}}
	mailer := &recordingMailer{}

	_, err := newTestRunner(src, store, mailer).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building digest")
	assert.Empty(t, mailer.sent)
	assert.Equal(t, 0, store.saves)
}

func TestRunSaveFailureReportsSent(t *testing.T) {
	store := &memStore{sent: types.SentSet{}, saveErr: errors.New("read-only")}
	mailer := &recordingMailer{}

	summary, err := newTestRunner(twoEntrySource(), store, mailer).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving sent-set")
	assert.True(t, summary.Sent)
	assert.Len(t, mailer.sent, 1)
}

func TestRunWritesArchive(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")
	r := newTestRunner(twoEntrySource(), &memStore{}, &recordingMailer{})
	r.Config.ArchiveDir = dir

	summary, err := r.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, summary.ArchivePath)

	_, err = os.Stat(summary.ArchivePath)
	require.NoError(t, err)

	a, err := ReadArchive(summary.ArchivePath)
	require.NoError(t, err)
	assert.Equal(t, summary.RunID, a.RunID)
	assert.Len(t, a.Entries, 2)
}
