package wizard

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"navix-backend/internal/models"
)

// Required document slots, in the order the app presents them.
const (
	SlotCommercialInvoice = "Commercial Invoice"
	SlotPackingList       = "Packing List"
	SlotBillOfLading      = "Bill of Lading"
)

var RequiredSlots = []string{SlotCommercialInvoice, SlotPackingList, SlotBillOfLading}

// StagedStatus is the fixed status of a document while it sits in the draft.
const StagedStatus = "Enviado"

// ObjectStore uploads raw file bytes into the storage bucket.
type ObjectStore interface {
	Upload(path string, data []byte) error
}

func ValidSlot(name string) bool {
	for _, s := range RequiredSlots {
		if s == name {
			return true
		}
	}
	return false
}

func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CleanExtension extracts the file extension and strips everything outside
// [A-Za-z0-9], diacritics first. Files without an extension default to pdf.
func CleanExtension(filename string) string {
	ext := "pdf"
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		ext = filename[i+1:]
	}
	ext = stripDiacritics(ext)
	var b strings.Builder
	for _, r := range ext {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeFileName cleans a whole filename for storage: diacritics removed,
// anything outside [A-Za-z0-9.-] replaced with an underscore. Used by the
// standalone document upload, which keeps the original name.
func SanitizeFileName(name string) string {
	name = stripDiacritics(name)
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// ObjectKey builds the storage key for a staged upload:
// {userID}/{epochMillis}_{slot with spaces as underscores}.{ext}
func ObjectKey(userID, slot, ext string, now time.Time) string {
	return fmt.Sprintf("%s/%d_%s.%s", userID, now.UnixMilli(), strings.ReplaceAll(slot, " ", "_"), ext)
}

// SizeLabel renders a byte count as the wallet-card style "1.24 MB" string.
func SizeLabel(bytes int) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/1024/1024)
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func stagedID() string {
	b := make([]byte, 9)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return string(b)
}

// AttachDocument uploads a file for one of the required slots and stages it
// in the draft, replacing any earlier attachment for the same slot. On any
// failure the staged collection is left unchanged; the uploaded object, if
// any, is not rolled back.
func (s *Session) AttachDocument(store ObjectStore, slot, filename string, data []byte) (models.StagedDocument, error) {
	if !ValidSlot(slot) {
		return models.StagedDocument{}, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	if s.UserID == uuid.Nil {
		return models.StagedDocument{}, ErrAuthRequired
	}

	ext := CleanExtension(filename)
	now := time.Now()
	key := ObjectKey(s.UserID.String(), slot, ext, now)

	if err := store.Upload(key, data); err != nil {
		return models.StagedDocument{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	doc := models.StagedDocument{
		ID:     stagedID(),
		Name:   slot,
		Type:   ext,
		Date:   now.Format("02/01/2006"),
		Status: StagedStatus,
		URL:    key,
		Size:   SizeLabel(len(data)),
	}

	s.mu.Lock()
	s.Draft.replaceFile(doc)
	s.mu.Unlock()

	return doc, nil
}
