package admin

import (
	"encoding/json"

	"course-market/internal/model"
)

// User-facing messages (id-ID).
const (
	MsgNameRequired = "Nama produk wajib diisi."
	MsgInvalidPrice = "Harga produk harus berupa angka dan lebih dari 0."
	MsgSaveFailed   = "Terjadi kesalahan saat menyimpan data."
	MsgDeleteFailed = "Gagal menghapus produk."
	MsgLoadFailed   = "Gagal mengambil data produk."
	MsgCreated      = "Produk berhasil ditambahkan!"
	MsgUpdated      = "Produk berhasil diupdate!"
	MsgDeleted      = "Produk berhasil dihapus!"

	// DeletePrompt is shown to the user before a delete is issued.
	DeletePrompt = "Hapus produk ini?"
)

// ModeKind tells whether the form creates a new product or edits an existing one.
type ModeKind int

const (
	ModeCreate ModeKind = iota
	ModeEditing
)

func (k ModeKind) String() string {
	if k == ModeEditing {
		return "editing"
	}
	return "create"
}

// Mode is the form mode. TargetID is set only when Kind is ModeEditing.
type Mode struct {
	Kind     ModeKind
	TargetID model.ProductID
}

// CreateMode returns the idle create mode.
func CreateMode() Mode {
	return Mode{Kind: ModeCreate}
}

// EditingMode returns the mode for editing the given product.
func EditingMode(id model.ProductID) Mode {
	return Mode{Kind: ModeEditing, TargetID: id}
}

// Editing reports the edit target, if any.
func (m Mode) Editing() (model.ProductID, bool) {
	return m.TargetID, m.Kind == ModeEditing
}

// MarshalJSON renders the mode as {"kind":"editing","targetId":"3"}.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     string          `json:"kind"`
		TargetID model.ProductID `json:"targetId,omitempty"`
	}{
		Kind:     m.Kind.String(),
		TargetID: m.TargetID,
	})
}

// StatusKind is the user-visible status of the page.
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusLoading
	StatusError
	StatusSuccess
)

func (k StatusKind) String() string {
	switch k {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	default:
		return "idle"
	}
}

// Status pairs a status kind with its message. Only error and success carry one.
type Status struct {
	Kind    StatusKind
	Message string
}

func idle() Status {
	return Status{Kind: StatusIdle}
}

func loading() Status {
	return Status{Kind: StatusLoading}
}

func failed(message string) Status {
	return Status{Kind: StatusError, Message: message}
}

func succeeded(message string) Status {
	return Status{Kind: StatusSuccess, Message: message}
}

// MarshalJSON renders the status as {"kind":"error","message":"..."}.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string `json:"kind"`
		Message string `json:"message,omitempty"`
	}{
		Kind:    s.Kind.String(),
		Message: s.Message,
	})
}

// Snapshot is a copy of the controller state, safe to hand to a view.
type Snapshot struct {
	Products []model.Product `json:"products"`
	Name     string          `json:"name"`
	Price    string          `json:"price"`
	Mode     Mode            `json:"mode"`
	// Status is Loading while any operation is in flight, otherwise Result.
	Status Status `json:"status"`
	// Result is the outcome of the most recently settled action.
	Result   Status `json:"result"`
	InFlight int    `json:"inFlight"`
}

// Loading reports whether any operation is in flight.
func (s Snapshot) Loading() bool {
	return s.InFlight > 0
}
