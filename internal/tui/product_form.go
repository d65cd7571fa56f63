// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/buypy/backoffice/internal/i18n"
	"github.com/buypy/backoffice/internal/logging"
	"github.com/buypy/backoffice/internal/model"
)

// dateLayout is the format of every date typed into the TUI.
const dateLayout = "2006-01-02"

type productAddedMsg struct {
	kind  model.ProductType
	label string
	err   error
}

type formField struct {
	key   string // json name of the model field, used for error placement
	input textinput.Model
}

var (
	commonFieldKeys = []string{"quantity", "price", "vat_rate", "popularity", "image_path"}
	bookFieldKeys   = []string{"isbn", "title", "genre", "publisher", "author", "publication_date"}
	elecFieldKeys   = []string{"serial_number", "brand", "model", "type", "tech_specs"}
)

// productFormModel adds a book or an electronics product. Focus 0 is the
// kind switch, then the visible fields, then the submit button.
type productFormModel struct {
	ctx        context.Context
	backend    Backend
	kind       model.ProductType
	fields     map[string]*formField
	focusIndex int
	fieldErrs  map[string]string
	picker     filepicker.Model
	picking    bool
	busy       bool
	status     string
	err        string
}

func newProductFormModel(ctx context.Context, b Backend) *productFormModel {
	m := &productFormModel{
		ctx:       ctx,
		backend:   b,
		kind:      model.ProductBook,
		fields:    make(map[string]*formField),
		fieldErrs: make(map[string]string),
	}
	all := append(append(append([]string(nil), commonFieldKeys...), bookFieldKeys...), elecFieldKeys...)
	for _, key := range all {
		t := textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 256
		t.Width = 40
		t.Prompt = fmt.Sprintf("%-18s ", i18n.T("product_form.field."+key))
		m.fields[key] = &formField{key: key, input: t}
	}
	m.fields["vat_rate"].input.SetValue("23")
	m.fields["popularity"].input.SetValue("3")
	m.fields["quantity"].input.SetValue("1")
	m.fields["publication_date"].input.Placeholder = dateLayout
	m.fields["image_path"].input.Placeholder = i18n.T("product_form.image_hint")
	return m
}

func (m *productFormModel) Init() tea.Cmd { return nil }

// visible returns the field keys shown for the current kind, in focus order.
func (m *productFormModel) visible() []string {
	keys := append([]string(nil), commonFieldKeys...)
	if m.kind == model.ProductBook {
		return append(keys, bookFieldKeys...)
	}
	return append(keys, elecFieldKeys...)
}

func (m *productFormModel) submitIndex() int { return len(m.visible()) + 1 }

// focusedKey returns the key of the focused field or "".
func (m *productFormModel) focusedKey() string {
	keys := m.visible()
	if i := m.focusIndex - 1; i >= 0 && i < len(keys) {
		return keys[i]
	}
	return ""
}

func (m *productFormModel) setFocus(i int) tea.Cmd {
	m.focusIndex = i
	focused := m.focusedKey()
	var cmd tea.Cmd
	for key, f := range m.fields {
		if key == focused {
			cmd = f.input.Focus()
			f.input.TextStyle = focusedStyle
			continue
		}
		f.input.Blur()
		f.input.TextStyle = lipgloss.NewStyle()
	}
	return cmd
}

func (m *productFormModel) value(key string) string {
	return strings.TrimSpace(m.fields[key].input.Value())
}

// parseCommon reads the shared numeric fields. Unparsable values are
// reported per field.
func (m *productFormModel) parseCommon() model.ProductInput {
	var in model.ProductInput
	var err error
	if in.Quantity, err = strconv.Atoi(m.value("quantity")); err != nil {
		m.fieldErrs["quantity"] = i18n.T("product_form.error.integer")
	}
	if in.Popularity, err = strconv.Atoi(m.value("popularity")); err != nil {
		m.fieldErrs["popularity"] = i18n.T("product_form.error.integer")
	}
	if in.Price, err = decimal.NewFromString(strings.Replace(m.value("price"), ",", ".", 1)); err != nil {
		m.fieldErrs["price"] = i18n.T("product_form.error.number")
	}
	if in.VATRate, err = decimal.NewFromString(strings.Replace(m.value("vat_rate"), ",", ".", 1)); err != nil {
		m.fieldErrs["vat_rate"] = i18n.T("product_form.error.number")
	}
	in.ImagePath = m.value("image_path")
	return in
}

// collectErrors merges model validation failures into the field errors.
func (m *productFormModel) collectErrors(err error) {
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	for _, f := range verr.Fields {
		if _, seen := m.fieldErrs[f.Field]; !seen {
			m.fieldErrs[f.Field] = f.Message
		}
	}
}

func (m *productFormModel) submit() tea.Cmd {
	m.fieldErrs = make(map[string]string)
	m.status, m.err = "", ""
	ctx, b := m.ctx, m.backend
	common := m.parseCommon()

	if m.kind == model.ProductBook {
		book := model.NewBook{
			ProductInput: common,
			ISBN:         m.value("isbn"),
			Title:        m.value("title"),
			Genre:        m.value("genre"),
			Publisher:    m.value("publisher"),
			Author:       m.value("author"),
		}
		if d := m.value("publication_date"); d != "" {
			t, err := time.Parse(dateLayout, d)
			if err != nil {
				m.fieldErrs["publication_date"] = i18n.T("product_form.error.date")
			}
			book.PublicationDate = t
		}
		m.collectErrors(book.Validate())
		if len(m.fieldErrs) > 0 {
			m.err = i18n.T("product_form.error.invalid")
			return nil
		}
		m.busy = true
		return func() tea.Msg {
			return productAddedMsg{kind: model.ProductBook, label: book.Title, err: b.AddBook(ctx, book)}
		}
	}

	elec := model.NewElectronics{
		ProductInput: common,
		SerialNumber: m.value("serial_number"),
		Brand:        m.value("brand"),
		Model:        m.value("model"),
		TechSpecs:    m.value("tech_specs"),
		Kind:         m.value("type"),
	}
	m.collectErrors(elec.Validate())
	if len(m.fieldErrs) > 0 {
		m.err = i18n.T("product_form.error.invalid")
		return nil
	}
	m.busy = true
	return func() tea.Msg {
		label := model.FullName(elec.Brand, elec.Model)
		return productAddedMsg{kind: model.ProductElectronics, label: label, err: b.AddElectronics(ctx, elec)}
	}
}

// reset clears the type-specific fields and the image after a successful add.
func (m *productFormModel) reset() {
	keys := append(append([]string{"image_path", "price"}, bookFieldKeys...), elecFieldKeys...)
	for _, key := range keys {
		m.fields[key].input.SetValue("")
	}
}

func (m *productFormModel) openPicker() tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = model.ImageExtensions
	if dir, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = dir
	}
	m.picker = fp
	m.picking = true
	return m.picker.Init()
}

func (m *productFormModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && (key.String() == "esc" || key.String() == "q") {
		m.picking = false
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.fields["image_path"].input.SetValue(path)
		delete(m.fieldErrs, "image_path")
		m.picking = false
		return m, nil
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.fieldErrs["image_path"] = i18n.T("product_form.error.image_type", path)
	}
	return m, cmd
}

func (m *productFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.picking {
		return m.updatePicker(msg)
	}
	switch msg := msg.(type) {
	case productAddedMsg:
		m.busy = false
		if msg.err != nil {
			m.collectErrors(msg.err)
			m.err = describeError(msg.err)
			return m, nil
		}
		logging.Infof("added %s product %q", msg.kind, msg.label)
		m.status = i18n.T("product_form.added", msg.label)
		m.reset()
		return m, nil
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		s := msg.String()
		switch s {
		case "esc":
			return m, backToMenu
		case "ctrl+f":
			return m, m.openPicker()
		case "tab", "down", "shift+tab", "up":
			i := m.focusIndex + 1
			if s == "shift+tab" || s == "up" {
				i = m.focusIndex - 1
			}
			if i > m.submitIndex() {
				i = 0
			} else if i < 0 {
				i = m.submitIndex()
			}
			return m, m.setFocus(i)
		case "enter":
			if m.focusIndex == m.submitIndex() {
				return m, m.submit()
			}
			if m.focusedKey() == "image_path" && m.value("image_path") == "" {
				return m, m.openPicker()
			}
			return m, m.setFocus(m.focusIndex + 1)
		}
		if m.focusIndex == 0 {
			switch s {
			case "left", "right", "h", "l", " ":
				if m.kind == model.ProductBook {
					m.kind = model.ProductElectronics
				} else {
					m.kind = model.ProductBook
				}
				m.fieldErrs = make(map[string]string)
				m.err = ""
			}
			return m, nil
		}
	}
	if key := m.focusedKey(); key != "" {
		var cmd tea.Cmd
		m.fields[key].input, cmd = m.fields[key].input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *productFormModel) View() string {
	if m.picking {
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(i18n.T("product_form.pick_image")),
			m.picker.View(),
			"",
			helpStyle.Render(i18n.T("product_form.picker_help")),
		)
	}
	kindLine := fmt.Sprintf("%-18s ‹ %s ›", i18n.T("product_form.field.kind"), m.kind)
	if m.focusIndex == 0 {
		kindLine = formSelectedItemStyle.Render(kindLine)
	}
	items := []string{titleStyle.Render(i18n.T("product_form.title")), kindLine, ""}
	for _, key := range m.visible() {
		line := m.fields[key].input.View()
		if msg, ok := m.fieldErrs[key]; ok {
			line += "  " + errorStyle.Render(msg)
		}
		items = append(items, line)
	}
	button := formItemStyle.Render(i18n.T("product_form.submit"))
	if m.focusIndex == m.submitIndex() {
		button = formSelectedItemStyle.Render(i18n.T("product_form.submit"))
	}
	items = append(items, "", button)
	if m.busy {
		items = append(items, "", helpStyle.Render(i18n.T("app.saving")))
	}
	if m.status != "" {
		items = append(items, "", successStyle.Render(m.status))
	}
	if m.err != "" {
		items = append(items, "", errorStyle.Render(m.err))
	}
	items = append(items, "", helpStyle.Render(i18n.T("product_form.help")))
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}
