package admin

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/projects"
	"portfolio-backend/internal/resume"
	"portfolio-backend/internal/supabase"
)

// Toast texts shown for each outcome.
const (
	ToastProjectAdded   = "Project added!"
	ToastProjectUpdated = "Project updated!"
	ToastProjectDeleted = "Project deleted"
	ToastPDFUploaded    = "PDF uploaded!"
	ToastResumeUploaded = "Resume uploaded!"
	ToastResumeURLSaved = "Resume URL saved!"

	prefixSaveFailed    = "Save failed: "
	prefixDeleteFailed  = "Delete failed: "
	prefixUploadFailed  = "Upload failed: "
	prefixReorderFailed = "Reorder failed: "
)

var (
	ErrNotAuthenticated = errors.New("admin is not authenticated")
	ErrNoEditTarget     = errors.New("no project is being edited")
	ErrNoPendingDelete  = errors.New("no delete is pending confirmation")
)

// Notifier shows a short-lived status message.
type Notifier interface {
	Notify(message string)
}

type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// PDFMode is how the project form gets its pdf_url. One mode is active per edit.
type PDFMode string

const (
	PDFUpload PDFMode = "upload"
	PDFLink   PDFMode = "url"
)

// EditTarget is what the project form is editing: nothing, a new project, or
// the project with ID.
type EditTarget struct {
	New bool
	ID  models.ProjectID
}

func (t EditTarget) None() bool { return !t.New && t.ID == "" }

type PanelConfig struct {
	Credentials *Credentials
	Projects    *projects.Repository
	PDFs        *projects.PDFs
	Resume      *resume.Repository
	Policy      projects.ReorderPolicy
	Notifier    Notifier
}

// Panel is the admin workflow: authentication, the project form, delete
// confirmation, reordering and resume management over a local Board.
type Panel struct {
	gate     *Gate
	projects *projects.Repository
	pdfs     *projects.PDFs
	resume   *resume.Repository
	policy   projects.ReorderPolicy
	notifier Notifier
	board    *projects.Board

	mu            sync.Mutex
	target        EditTarget
	pdfMode       PDFMode
	uploadedPDF   string
	pendingDelete models.ProjectID
	resumeRecord  *models.Resume
}

func NewPanel(cfg PanelConfig) *Panel {
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}
	policy := cfg.Policy
	if policy == "" {
		policy = projects.BestEffort
	}

	p := &Panel{
		gate:     NewGate(cfg.Credentials),
		projects: cfg.Projects,
		pdfs:     cfg.PDFs,
		resume:   cfg.Resume,
		policy:   policy,
		notifier: notifier,
		board:    projects.NewBoard(),
		pdfMode:  PDFUpload,
	}
	p.gate.OnAuthenticated = p.Load
	return p
}

func (p *Panel) Gate() *Gate { return p.gate }

func (p *Panel) Board() *projects.Board { return p.board }

// Open shows the credential prompt.
func (p *Panel) Open() { p.gate.Open() }

// Login opens the gate if needed and submits password.
func (p *Panel) Login(ctx context.Context, password string) error {
	p.gate.Open()
	p.gate.Type(password)
	return p.gate.Submit(ctx)
}

// Load fetches the resume record and the project list. A project list that
// arrives after a local change is dropped.
func (p *Panel) Load(ctx context.Context) {
	since := p.board.Version()

	rec, err := p.resume.Get(ctx)
	if err != nil {
		log.Printf("Warning: failed to load resume: %v", err)
		rec = nil
	}
	p.mu.Lock()
	p.resumeRecord = rec
	p.mu.Unlock()

	list := p.projects.List(ctx)
	if !p.board.Load(list, since) {
		log.Printf("Warning: project list changed while loading, keeping local state")
	}
}

// Logout closes the panel and drops all session state.
func (p *Panel) Logout() {
	p.gate.Close()
	p.mu.Lock()
	p.target = EditTarget{}
	p.pdfMode = PDFUpload
	p.uploadedPDF = ""
	p.pendingDelete = ""
	p.resumeRecord = nil
	p.mu.Unlock()
	p.board.Reset()
}

func (p *Panel) Projects() []models.Project {
	list, _ := p.board.Snapshot()
	return list
}

func (p *Panel) Resume() *models.Resume {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resumeRecord
}

func (p *Panel) EditTarget() EditTarget {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.target
}

func (p *Panel) PDFMode() PDFMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pdfMode
}

func (p *Panel) PendingDelete() models.ProjectID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pendingDelete
}

// StartNew points the form at a new project and returns its blank values.
func (p *Panel) StartNew() (projects.ProjectInput, error) {
	if err := p.requireAuth(); err != nil {
		return projects.ProjectInput{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.target = EditTarget{New: true}
	p.pdfMode = PDFUpload
	p.uploadedPDF = ""
	return projects.ProjectInput{Type: models.DefaultProjectType}, nil
}

// StartEdit points the form at project id and returns its current values.
func (p *Panel) StartEdit(id models.ProjectID) (projects.ProjectInput, error) {
	if err := p.requireAuth(); err != nil {
		return projects.ProjectInput{}, err
	}
	existing, ok := p.board.Find(id)
	if !ok {
		return projects.ProjectInput{}, projects.ErrNotFound
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.target = EditTarget{ID: id}
	p.uploadedPDF = ""
	if existing.PDFURL != nil && *existing.PDFURL != "" {
		p.pdfMode = PDFLink
	} else {
		p.pdfMode = PDFUpload
	}
	return projects.InputFrom(existing).Normalize(), nil
}

func (p *Panel) CancelEdit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.target = EditTarget{}
	p.uploadedPDF = ""
}

func (p *Panel) SetPDFMode(mode PDFMode) error {
	if mode != PDFUpload && mode != PDFLink {
		return errors.New("unknown pdf mode " + string(mode))
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pdfMode = mode
	return nil
}

// UploadProjectPDF stores a document for the project being edited and returns
// its public URL. In upload mode Save uses this URL as pdf_url.
func (p *Panel) UploadProjectPDF(ctx context.Context, title string, data io.Reader) (string, error) {
	if err := p.requireAuth(); err != nil {
		return "", err
	}
	url, err := p.pdfs.Upload(ctx, title, data)
	if err != nil {
		p.notifier.Notify(prefixUploadFailed + message(err))
		return "", err
	}
	p.mu.Lock()
	p.uploadedPDF = url
	p.mu.Unlock()
	p.notifier.Notify(ToastPDFUploaded)
	return url, nil
}

// Save persists the form for the current edit target. An empty title is
// ignored without a message.
func (p *Panel) Save(ctx context.Context, form projects.ProjectInput) error {
	if err := p.requireAuth(); err != nil {
		return err
	}
	if strings.TrimSpace(form.Title) == "" {
		return nil
	}

	p.mu.Lock()
	target := p.target
	if p.pdfMode == PDFUpload && p.uploadedPDF != "" {
		uploaded := p.uploadedPDF
		form.PDFURL = &uploaded
	}
	p.mu.Unlock()
	form = form.Normalize()

	switch {
	case target.New:
		created, err := p.projects.Create(ctx, form, p.board.NextOrderIndex())
		if err != nil {
			p.notifier.Notify(prefixSaveFailed + message(err))
			return err
		}
		p.board.Append(created)
		p.notifier.Notify(ToastProjectAdded)
	case target.ID != "":
		if err := p.projects.Update(ctx, target.ID, form); err != nil {
			p.notifier.Notify(prefixSaveFailed + message(err))
			return err
		}
		p.board.Merge(target.ID, form)
		p.notifier.Notify(ToastProjectUpdated)
	default:
		return ErrNoEditTarget
	}

	p.CancelEdit()
	return nil
}

// RequestDelete asks for confirmation before deleting project id.
func (p *Panel) RequestDelete(id models.ProjectID) error {
	if err := p.requireAuth(); err != nil {
		return err
	}
	if _, ok := p.board.Find(id); !ok {
		return projects.ErrNotFound
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pendingDelete = id
	return nil
}

func (p *Panel) CancelDelete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pendingDelete = ""
}

// ConfirmDelete deletes the project awaiting confirmation.
func (p *Panel) ConfirmDelete(ctx context.Context) error {
	if err := p.requireAuth(); err != nil {
		return err
	}
	p.mu.Lock()
	id := p.pendingDelete
	p.mu.Unlock()
	if id == "" {
		return ErrNoPendingDelete
	}

	if err := p.projects.Delete(ctx, id); err != nil {
		p.notifier.Notify(prefixDeleteFailed + message(err))
		return err
	}
	p.board.Remove(id)
	p.mu.Lock()
	if p.pendingDelete == id {
		p.pendingDelete = ""
	}
	if p.target.ID == id {
		p.target = EditTarget{}
	}
	p.mu.Unlock()
	p.notifier.Notify(ToastProjectDeleted)
	return nil
}

// Reorder moves the project at src to dst. The local order changes before
// the positions are written.
func (p *Panel) Reorder(ctx context.Context, src, dst int) error {
	if err := p.requireAuth(); err != nil {
		return err
	}
	before, after, version, err := p.board.Move(src, dst)
	if err != nil {
		return err
	}

	if err := p.projects.PersistOrder(ctx, before, after, p.policy); err != nil {
		p.notifier.Notify(prefixReorderFailed + message(err))
		if p.policy == projects.AllOrNothing && !p.board.Restore(before, version) {
			log.Printf("Warning: skipped restoring project order, local list changed since the move")
		}
		return err
	}
	return nil
}

func (p *Panel) UploadResume(ctx context.Context, data io.Reader) error {
	if err := p.requireAuth(); err != nil {
		return err
	}
	rec, err := p.resume.Upload(ctx, data)
	if err != nil {
		p.notifier.Notify(prefixUploadFailed + message(err))
		return err
	}
	p.mu.Lock()
	p.resumeRecord = rec
	p.mu.Unlock()
	p.notifier.Notify(ToastResumeUploaded)
	return nil
}

// SaveResumeURL points the resume at url. A blank url is ignored.
func (p *Panel) SaveResumeURL(ctx context.Context, url string) error {
	if err := p.requireAuth(); err != nil {
		return err
	}
	if strings.TrimSpace(url) == "" {
		return nil
	}
	rec, err := p.resume.SaveURL(ctx, url)
	if err != nil {
		p.notifier.Notify(prefixSaveFailed + message(err))
		return err
	}
	p.mu.Lock()
	p.resumeRecord = rec
	p.mu.Unlock()
	p.notifier.Notify(ToastResumeURLSaved)
	return nil
}

func (p *Panel) requireAuth() error {
	if !p.gate.Authenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

// message is the store's own wording when there is one.
func message(err error) string {
	var storeErr *supabase.Error
	if errors.As(err, &storeErr) {
		return storeErr.Message
	}
	return err.Error()
}
