package wizard_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navix-backend/internal/wizard"
)

type fakeObjectStore struct {
	paths []string
	err   error
}

func (f *fakeObjectStore) Upload(path string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.paths = append(f.paths, path)
	return nil
}

func TestCleanExtension(t *testing.T) {
	assert.Equal(t, "pdf", wizard.CleanExtension("invoice.pdf"))
	assert.Equal(t, "PDF", wizard.CleanExtension("INVOICE.PDF"))
	assert.Equal(t, "pdf", wizard.CleanExtension("no-extension"))
	// diacritics stripped, non-alphanumerics dropped
	assert.Equal(t, "pdf", wizard.CleanExtension("fatura.pdf?"))
	assert.Equal(t, "jpg", wizard.CleanExtension("foto.jpg "))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "Fatura_Comercial.pdf", wizard.SanitizeFileName("Fatura Comercial.pdf"))
	assert.Equal(t, "cafe.pdf", wizard.SanitizeFileName("café.pdf"))
	assert.Equal(t, "conta-02.03.pdf", wizard.SanitizeFileName("conta-02.03.pdf"))
}

func TestObjectKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	key := wizard.ObjectKey("u-1", wizard.SlotCommercialInvoice, "pdf", now)
	assert.Equal(t, "u-1/1700000000000_Commercial_Invoice.pdf", key)
}

func TestSizeLabel(t *testing.T) {
	assert.Equal(t, "1.00 MB", wizard.SizeLabel(1048576))
	assert.Equal(t, "0.00 MB", wizard.SizeLabel(0))
	assert.Equal(t, "2.50 MB", wizard.SizeLabel(2621440))
}

func TestAttachDocument_Stages(t *testing.T) {
	s := newSession(t)
	store := &fakeObjectStore{}

	doc, err := s.AttachDocument(store, wizard.SlotCommercialInvoice, "fatura.pdf", make([]byte, 1048576))
	require.NoError(t, err)

	assert.Equal(t, wizard.SlotCommercialInvoice, doc.Name)
	assert.Equal(t, "pdf", doc.Type)
	assert.Equal(t, wizard.StagedStatus, doc.Status)
	assert.Equal(t, "1.00 MB", doc.Size)
	assert.Len(t, doc.ID, 9)
	assert.Contains(t, doc.URL, s.UserID.String()+"/")
	assert.Contains(t, doc.URL, "Commercial_Invoice.pdf")

	d := s.Snapshot()
	require.Len(t, d.Files, 1)
	assert.Equal(t, doc, d.Files[0])
	assert.Len(t, store.paths, 1)
}

// Attaching the same slot twice keeps exactly one staged document, the
// second one.
func TestAttachDocument_ReplacesSlot(t *testing.T) {
	s := newSession(t)
	store := &fakeObjectStore{}

	_, err := s.AttachDocument(store, wizard.SlotPackingList, "first.pdf", []byte("a"))
	require.NoError(t, err)
	second, err := s.AttachDocument(store, wizard.SlotPackingList, "second.jpg", []byte("bb"))
	require.NoError(t, err)

	d := s.Snapshot()
	require.Len(t, d.Files, 1)
	assert.Equal(t, second.ID, d.Files[0].ID)
	assert.Equal(t, "jpg", d.Files[0].Type)
}

func TestAttachDocument_DifferentSlotsAccumulate(t *testing.T) {
	s := newSession(t)
	store := &fakeObjectStore{}

	_, err := s.AttachDocument(store, wizard.SlotCommercialInvoice, "a.pdf", []byte("a"))
	require.NoError(t, err)
	_, err = s.AttachDocument(store, wizard.SlotBillOfLading, "b.pdf", []byte("b"))
	require.NoError(t, err)

	assert.Len(t, s.Snapshot().Files, 2)
}

func TestAttachDocument_UnknownSlot(t *testing.T) {
	s := newSession(t)
	store := &fakeObjectStore{}

	_, err := s.AttachDocument(store, "Certificate of Origin", "a.pdf", []byte("a"))
	assert.ErrorIs(t, err, wizard.ErrUnknownSlot)
	assert.Empty(t, s.Snapshot().Files)
	assert.Empty(t, store.paths)
}

// An upload failure surfaces the error and leaves the staged collection
// unchanged.
func TestAttachDocument_UploadFailureLeavesLedgerUntouched(t *testing.T) {
	s := newSession(t)

	_, err := s.AttachDocument(&fakeObjectStore{}, wizard.SlotCommercialInvoice, "keep.pdf", []byte("a"))
	require.NoError(t, err)

	failing := &fakeObjectStore{err: errors.New("bucket rejected the write")}
	_, err = s.AttachDocument(failing, wizard.SlotCommercialInvoice, "new.jpg", []byte("b"))
	assert.ErrorIs(t, err, wizard.ErrUploadFailed)

	d := s.Snapshot()
	require.Len(t, d.Files, 1)
	assert.Equal(t, "pdf", d.Files[0].Type)
}
