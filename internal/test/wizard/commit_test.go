package wizard_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navix-backend/internal/models"
	"navix-backend/internal/wizard"
)

type fakeRecordStore struct {
	processErr error
	docsErr    error
	notifErr   error

	// entered is signaled when InsertProcess starts, release blocks it.
	entered chan struct{}
	release chan struct{}

	process       *models.Process
	docs          []models.Document
	notifications []models.Notification
}

func (f *fakeRecordStore) InsertProcess(p *models.Process) (*models.Process, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	if f.processErr != nil {
		return nil, f.processErr
	}
	p.ID = uuid.New()
	f.process = p
	return p, nil
}

func (f *fakeRecordStore) InsertDocuments(docs []models.Document) error {
	if f.docsErr != nil {
		return f.docsErr
	}
	f.docs = append(f.docs, docs...)
	return nil
}

func (f *fakeRecordStore) InsertNotification(n *models.Notification) error {
	if f.notifErr != nil {
		return f.notifErr
	}
	f.notifications = append(f.notifications, *n)
	return nil
}

func atSummary(t *testing.T, s *wizard.Session) {
	t.Helper()
	for s.Step() < wizard.StepSummary {
		s.Next()
	}
}

func TestProcessCode(t *testing.T) {
	imp := regexp.MustCompile(`^IMP-\d{1,3}$`)
	exp := regexp.MustCompile(`^EXP-\d{1,3}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, imp, wizard.ProcessCode("import"))
		assert.Regexp(t, exp, wizard.ProcessCode("export"))
	}
}

func TestFinish_BeforeSummaryRejected(t *testing.T) {
	s := newSession(t)
	store := &fakeRecordStore{}

	_, err := s.Finish(store)
	assert.ErrorIs(t, err, wizard.ErrNotAtSummary)
	assert.Nil(t, store.process)
}

func TestFinish_NoDocuments(t *testing.T) {
	s := newSession(t)
	s.SetDetails("Soybeans", "BR", "CN", "1201.90.00")
	atSummary(t, s)
	store := &fakeRecordStore{}

	result, err := s.Finish(store)
	require.NoError(t, err)

	require.NotNil(t, store.process)
	assert.Empty(t, store.docs)
	require.Len(t, store.notifications, 1)
	assert.Equal(t, 0, result.DocumentsSaved)
	assert.False(t, result.PartialSuccess())
	assert.NoError(t, result.NotificationErr)
}

func TestFinish_FullScenario(t *testing.T) {
	sessions := wizard.NewSessionStore()
	userID := uuid.New()
	s := sessions.Create(userID, "export")
	s.SetDetails("Coffee", "BR", "US", "0901.21.00")

	objects := &fakeObjectStore{}
	docA, err := s.AttachDocument(objects, wizard.SlotCommercialInvoice, "fatura.pdf", []byte("pdf-bytes"))
	require.NoError(t, err)

	atSummary(t, s)
	store := &fakeRecordStore{}
	result, err := s.Finish(store)
	require.NoError(t, err)

	p := store.process
	require.NotNil(t, p)
	assert.Equal(t, userID, p.UserID)
	assert.Equal(t, "export", p.Type)
	assert.Regexp(t, `^EXP-\d{1,3}$`, p.Code)
	assert.Equal(t, "Coffee", p.Product)
	assert.Equal(t, "BR", p.Origin)
	assert.Equal(t, "US", p.Destination)
	assert.Equal(t, models.ProcessStatusUnderReview, p.Status)
	assert.Equal(t, 10, p.Progress)

	require.Len(t, store.docs, 1)
	doc := store.docs[0]
	assert.Equal(t, wizard.SlotCommercialInvoice, doc.Name)
	assert.Equal(t, p.ID, doc.ProcessID.UUID)
	assert.True(t, doc.ProcessID.Valid)
	assert.Equal(t, models.DocStatusPending, doc.Status)
	assert.Equal(t, docA.URL, doc.URL)

	require.Len(t, store.notifications, 1)
	n := store.notifications[0]
	assert.Equal(t, userID, n.UserID)
	assert.Equal(t, "Novo Processo Criado", n.Title)
	assert.Equal(t, "success", n.Type)
	assert.Contains(t, n.Message, p.Code)
	assert.Contains(t, n.Message, "Coffee")

	assert.Equal(t, 1, result.DocumentsSaved)
	assert.False(t, result.PartialSuccess())
}

func TestFinish_OneDocumentPerStagedFile(t *testing.T) {
	s := newSession(t)
	objects := &fakeObjectStore{}
	for _, slot := range wizard.RequiredSlots {
		_, err := s.AttachDocument(objects, slot, slot+".pdf", []byte("x"))
		require.NoError(t, err)
	}
	atSummary(t, s)

	store := &fakeRecordStore{}
	result, err := s.Finish(store)
	require.NoError(t, err)

	require.Len(t, store.docs, len(wizard.RequiredSlots))
	for _, doc := range store.docs {
		assert.Equal(t, store.process.ID, doc.ProcessID.UUID)
	}
	assert.Equal(t, len(wizard.RequiredSlots), result.DocumentsSaved)
}

// A failed process insert aborts the whole sequence: no documents, no
// notification.
func TestFinish_ProcessInsertFailureAborts(t *testing.T) {
	s := newSession(t)
	objects := &fakeObjectStore{}
	_, err := s.AttachDocument(objects, wizard.SlotPackingList, "pl.pdf", []byte("x"))
	require.NoError(t, err)
	atSummary(t, s)

	store := &fakeRecordStore{processErr: errors.New("insert rejected")}
	result, err := s.Finish(store)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, store.docs)
	assert.Empty(t, store.notifications)
}

// A failed document bulk-insert after a created process is partial success:
// the process stands, the failure is reported, the sequence continues.
func TestFinish_DocumentFailureIsPartialSuccess(t *testing.T) {
	s := newSession(t)
	objects := &fakeObjectStore{}
	_, err := s.AttachDocument(objects, wizard.SlotPackingList, "pl.pdf", []byte("x"))
	require.NoError(t, err)
	atSummary(t, s)

	store := &fakeRecordStore{docsErr: errors.New("documents rejected")}
	result, err := s.Finish(store)
	require.NoError(t, err)

	assert.NotNil(t, store.process)
	assert.True(t, result.PartialSuccess())
	assert.Error(t, result.DocumentsErr)
	assert.Equal(t, 0, result.DocumentsSaved)
	// notification is still attempted
	assert.Len(t, store.notifications, 1)
}

// A failed notification insert does not fail the commit; it is reported in
// the result for the caller to log.
func TestFinish_NotificationFailureIsNonFatal(t *testing.T) {
	s := newSession(t)
	atSummary(t, s)

	store := &fakeRecordStore{notifErr: errors.New("notifications rejected")}
	result, err := s.Finish(store)
	require.NoError(t, err)

	assert.NotNil(t, store.process)
	assert.Error(t, result.NotificationErr)
	assert.False(t, result.PartialSuccess())
}

// A second finish while one is in flight is rejected instead of
// double-submitting.
func TestFinish_SingleFlight(t *testing.T) {
	s := newSession(t)
	atSummary(t, s)

	store := &fakeRecordStore{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.Finish(store)
		done <- err
	}()

	<-store.entered
	_, err := s.Finish(store)
	assert.ErrorIs(t, err, wizard.ErrCommitInProgress)

	close(store.release)
	require.NoError(t, <-done)
}
