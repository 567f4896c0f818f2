package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputComment
	inputEditComment
	inputFormTitle
	inputFormContent
	inputLoginEmail
	inputLoginPassword
	inputRegisterUsername
	inputRegisterEmail
	inputRegisterPassword
	inputRegisterConfirm
)

type spinnerTickMsg struct{}

type loadDoneMsg struct {
	err error
}

type likeDoneMsg struct {
	err error
}

type submitDoneMsg struct {
	id  int64
	err error
}

type registerDoneMsg struct {
	errs map[string]string
	err  error
}

type tuiModel struct {
	app    *App
	width  int
	height int

	input     textinput.Model
	content   textarea.Model
	inputMode inputMode

	formTitle        string
	loginEmail       string
	registerUsername string
	registerEmail    string
	registerPassword string
	registerErrors   map[string]string

	editingCommentID int64
	commentIndex     int

	showHelp      bool
	pending       bool
	spinnerIndex  int
	spinnerFrames []string
	detailScroll  int
}

var (
	teaNewProgram = tea.NewProgram
	runTeaProgram = func(program *tea.Program) (tea.Model, error) { return program.Run() }
)

func RunTUI(app *App) error {
	model := newTUIModel(app)
	program := teaNewProgram(model, tea.WithAltScreen())
	_, err := runTeaProgram(program)
	return err
}

func newTUIModel(app *App) tuiModel {
	input := textinput.New()
	input.CharLimit = 256
	input.Width = 50
	input.Prompt = "> "
	content := textarea.New()
	content.CharLimit = 0
	content.SetHeight(10)
	return tuiModel{
		app:            app,
		input:          input,
		content:        content,
		registerErrors: map[string]string{},
		spinnerFrames:  []string{"|", "/", "-", "\\"},
		// Init starts the home load; keys stay gated until it reports back
		pending: true,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(
		loadCmd(func() error { m.app.GoHome(); return nil }),
		tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg {
			return spinnerTickMsg{}
		}),
	)
}

func loadCmd(run func() error) tea.Cmd {
	return func() tea.Msg {
		return loadDoneMsg{err: run()}
	}
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.content.SetWidth(clamp(m.width-8, 20, 100))
	case spinnerTickMsg:
		if len(m.spinnerFrames) > 0 {
			m.spinnerIndex = (m.spinnerIndex + 1) % len(m.spinnerFrames)
		}
		return m, tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg {
			return spinnerTickMsg{}
		})
	case loadDoneMsg:
		m.pending = false
		m.commentIndex = 0
		return m, nil
	case likeDoneMsg:
		m.pending = false
		return m, nil
	case registerDoneMsg:
		m.pending = false
		if len(msg.errs) > 0 {
			m.registerErrors = msg.errs
			return m.startRegisterFields(), nil
		}
		return m, nil
	case submitDoneMsg:
		m.pending = false
		if msg.err == nil && len(m.app.FormErrors()) == 0 {
			m.inputMode = inputNone
			m.input.Blur()
			m.content.Blur()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	// at most one command in flight; keys are dropped until its result
	// message arrives, so a late load never lands on a view the user
	// already left
	if m.pending {
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.showHelp {
		if key == "?" || key == "esc" || key == "q" {
			m.showHelp = false
		}
		return m, nil
	}
	if m.inputMode != inputNone {
		return m.handleInputKey(msg)
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	}

	switch m.app.Route() {
	case RouteHome:
		return m.handleHomeKey(key)
	case RouteList:
		return m.handleListKey(key)
	case RouteDetail:
		return m.handleDetailKey(key)
	case RouteLogin:
		return m.startLogin(), nil
	case RouteRegister:
		return m.startRegister(), nil
	case RouteNotFound:
		if key == "esc" || key == "enter" || key == "b" {
			m.pending = true
			return m, loadCmd(func() error { m.app.GoList(); return nil })
		}
	}
	return m, nil
}

func (m tuiModel) handleHomeKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "l", "enter":
		m.pending = true
		return m, loadCmd(func() error { m.app.GoList(); return nil })
	case "i":
		return m.startLogin(), nil
	case "r":
		return m.startRegister(), nil
	case "O":
		m.app.Logout()
	}
	return m, nil
}

func (m tuiModel) handleListKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		m.app.MoveSelection(1)
	case "k", "up":
		m.app.MoveSelection(-1)
	case "enter":
		if summary := m.app.SelectedArticle(); summary != nil {
			id := summary.ArticleID
			m.pending = true
			m.detailScroll = 0
			return m, loadCmd(func() error { return m.app.OpenArticle(id) })
		}
	case "n", "right":
		if m.app.HasNextPage() {
			page := m.app.page + 1
			m.pending = true
			return m, loadCmd(func() error { return m.app.SetPage(page) })
		}
	case "p", "left":
		if m.app.HasPrevPage() {
			page := m.app.page - 1
			m.pending = true
			return m, loadCmd(func() error { return m.app.SetPage(page) })
		}
	case "g":
		if m.app.HasPrevPage() {
			m.pending = true
			return m, loadCmd(func() error { return m.app.SetPage(0) })
		}
	case "G":
		if m.app.HasNextPage() {
			last := m.app.TotalPages() - 1
			m.pending = true
			return m, loadCmd(func() error { return m.app.SetPage(last) })
		}
	case "/":
		m = m.startInput(inputSearch, "검색어를 입력하세요")
		m.input.SetValue(m.app.keyword)
	case "w":
		return m.openForm(0)
	case "h", "esc":
		m.pending = true
		return m, loadCmd(func() error { m.app.GoHome(); return nil })
	case "o":
		_ = m.app.OpenSelectedInBrowser()
	case "y":
		_ = m.app.CopySelectedURL()
	}
	return m, nil
}

func (m tuiModel) handleDetailKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "b", "esc":
		m.app.CloseArticle()
		m.pending = true
		return m, loadCmd(func() error { return m.app.LoadArticles() })
	case "l":
		m.pending = true
		return m, func() tea.Msg { return likeDoneMsg{err: m.app.ToggleLike()} }
	case "c":
		m = m.startInput(inputComment, "댓글을 입력하세요")
	case "J":
		if m.commentIndex < len(m.app.comments)-1 {
			m.commentIndex++
		}
	case "K":
		if m.commentIndex > 0 {
			m.commentIndex--
		}
	case "e":
		if comment, ok := m.selectedComment(); ok && m.app.CanEditComment(comment) {
			m = m.startInput(inputEditComment, "댓글을 입력하세요")
			m.editingCommentID = comment.CommentID
			m.input.SetValue(comment.Content)
		}
	case "x":
		if comment, ok := m.selectedComment(); ok && m.app.CanEditComment(comment) {
			id := comment.CommentID
			m.pending = true
			return m, loadCmd(func() error { return m.app.DeleteComment(id) })
		}
	case "E":
		if m.app.IsAuthor() {
			return m.openForm(m.app.article.ArticleID)
		}
	case "d":
		if m.app.IsAuthor() {
			m.pending = true
			return m, loadCmd(func() error { return m.app.DeleteArticle() })
		}
	case "pgup", "ctrl+u":
		m.adjustDetailScroll(-3)
	case "pgdown", "ctrl+d":
		m.adjustDetailScroll(3)
	case "o":
		_ = m.app.OpenSelectedInBrowser()
	case "y":
		_ = m.app.CopySelectedURL()
	}
	return m, nil
}

func (m tuiModel) selectedComment() (Comment, bool) {
	if m.commentIndex < 0 || m.commentIndex >= len(m.app.comments) {
		return Comment{}, false
	}
	return m.app.comments[m.commentIndex], true
}

func (m tuiModel) openForm(articleID int64) (tea.Model, tea.Cmd) {
	if err := m.app.OpenForm(articleID); err != nil {
		return m, nil
	}
	if m.app.Route() == RouteLogin {
		return m.startLogin(), nil
	}
	m.formTitle = ""
	m.content.SetValue("")
	if articleID != 0 {
		m.formTitle = m.app.article.Title
		m.content.SetValue(m.app.article.Content)
	}
	if draft, ok := m.app.FormDraft(); ok {
		m.formTitle = draft.Title
		m.content.SetValue(draft.Content)
	}
	m = m.startInput(inputFormTitle, "제목을 입력하세요")
	m.input.SetValue(m.formTitle)
	return m, nil
}

func (m tuiModel) startLogin() tuiModel {
	m.app.route = RouteLogin
	m = m.startInput(inputLoginEmail, "이메일을 입력하세요")
	return m
}

func (m tuiModel) startRegister() tuiModel {
	m.registerErrors = map[string]string{}
	return m.startRegisterFields()
}

func (m tuiModel) startRegisterFields() tuiModel {
	m.app.route = RouteRegister
	return m.startInput(inputRegisterUsername, "사용자 이름을 입력하세요")
}

func (m tuiModel) startInput(mode inputMode, placeholder string) tuiModel {
	m.inputMode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.input.EchoMode = textinput.EchoNormal
	if mode == inputLoginPassword || mode == inputRegisterPassword || mode == inputRegisterConfirm {
		m.input.EchoMode = textinput.EchoPassword
	}
	m.input.Focus()
	m.content.Blur()
	return m
}

func (m tuiModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.inputMode == inputFormContent {
		switch key {
		case "esc":
			m.app.AbandonForm(m.formTitle, m.content.Value())
			m.inputMode = inputNone
			m.content.Blur()
			return m, nil
		case "ctrl+s":
			title := m.formTitle
			body := m.content.Value()
			m.pending = true
			return m, func() tea.Msg {
				id, err := m.app.SubmitArticle(title, body, nil, nil)
				return submitDoneMsg{id: id, err: err}
			}
		}
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		return m, cmd
	}

	switch key {
	case "esc":
		return m.cancelInput(), nil
	case "enter":
		return m.commitInput()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tuiModel) cancelInput() tuiModel {
	switch m.inputMode {
	case inputFormTitle:
		m.app.AbandonForm(m.input.Value(), m.content.Value())
	case inputLoginEmail, inputLoginPassword, inputRegisterUsername, inputRegisterEmail, inputRegisterPassword, inputRegisterConfirm:
		m.app.GoHome()
	}
	m.inputMode = inputNone
	m.input.Blur()
	m.input.SetValue("")
	return m
}

func (m tuiModel) commitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	mode := m.inputMode
	m.inputMode = inputNone
	m.input.Blur()
	m.input.SetValue("")

	switch mode {
	case inputSearch:
		m.pending = true
		return m, loadCmd(func() error { return m.app.Search(value) })
	case inputComment:
		m.pending = true
		return m, loadCmd(func() error { return m.app.CreateComment(value) })
	case inputEditComment:
		id := m.editingCommentID
		m.editingCommentID = 0
		m.pending = true
		return m, loadCmd(func() error { return m.app.UpdateComment(id, value) })
	case inputFormTitle:
		m.formTitle = value
		m.inputMode = inputFormContent
		m.content.Placeholder = "내용을 입력하세요"
		m.content.Focus()
		return m, nil
	case inputLoginEmail:
		m.loginEmail = value
		m = m.startInput(inputLoginPassword, "비밀번호를 입력하세요")
		return m, nil
	case inputLoginPassword:
		email := m.loginEmail
		m.loginEmail = ""
		m.pending = true
		return m, loadCmd(func() error { return m.app.Login(email, value) })
	case inputRegisterUsername:
		m.registerUsername = value
		m = m.startInput(inputRegisterEmail, "이메일을 입력하세요")
		return m, nil
	case inputRegisterEmail:
		m.registerEmail = value
		m = m.startInput(inputRegisterPassword, "비밀번호를 입력하세요")
		return m, nil
	case inputRegisterPassword:
		m.registerPassword = value
		m = m.startInput(inputRegisterConfirm, "비밀번호를 다시 입력하세요")
		return m, nil
	case inputRegisterConfirm:
		username, email, password := m.registerUsername, m.registerEmail, m.registerPassword
		m.registerUsername, m.registerEmail, m.registerPassword = "", "", ""
		m.pending = true
		app := m.app
		return m, func() tea.Msg {
			errs, err := app.Register(username, email, password, value)
			return registerDoneMsg{errs: errs, err: err}
		}
	}
	return m, nil
}

func (m *tuiModel) adjustDetailScroll(delta int) {
	m.detailScroll += delta
	if m.detailScroll < 0 {
		m.detailScroll = 0
	}
}

// ---- rendering ----

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	activePage    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	body := m.renderRoute()
	header := m.renderHeader()
	status := m.renderStatusBar()
	page := lipgloss.JoinVertical(lipgloss.Left, header, body, status)
	// login, register, and the form render their inputs inline
	switch m.inputMode {
	case inputSearch, inputComment, inputEditComment:
		return m.renderInputOverlay()
	}
	return page
}

func (m tuiModel) renderRoute() string {
	switch m.app.Route() {
	case RouteHome:
		return m.renderHome()
	case RouteList:
		return m.renderList()
	case RouteDetail:
		return m.renderDetail()
	case RouteForm:
		return m.renderForm()
	case RouteLogin:
		return m.renderAuth("로그인")
	case RouteRegister:
		return m.renderRegister()
	case RouteNotFound:
		return lipgloss.NewStyle().Padding(2, 2).Render("페이지를 찾을 수 없습니다.\n\nesc - 게시글 목록으로")
	}
	return ""
}

func (m tuiModel) renderHeader() string {
	left := headerStyle.Render("KUKE 게시판")
	right := "로그인하지 않음"
	if session := m.app.Session(); session.LoggedIn() {
		right = session.Username + "님"
	}
	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}
	return lipgloss.NewStyle().Width(m.width).Padding(0, 1).Render(left + strings.Repeat(" ", padding) + right)
}

func (m tuiModel) renderHome() string {
	lines := []string{titleStyle.Render("인기 게시글"), ""}
	if len(m.app.hotArticles) == 0 {
		lines = append(lines, metaStyle.Render("인기 게시글이 없습니다."))
	}
	for _, hot := range m.app.hotArticles {
		excerpt := truncate(stripNewlines(hot.Content), 60)
		lines = append(lines,
			fmt.Sprintf("%s  %s", hot.Title, metaStyle.Render(fmt.Sprintf("%s · 조회 %d", hot.AuthorName, hot.ViewCount))),
			"  "+metaStyle.Render(excerpt),
		)
	}
	lines = append(lines, "", metaStyle.Render("l - 게시글 목록, i - 로그인, r - 회원가입, ? - 도움말"))
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}

func (m tuiModel) renderList() string {
	lines := []string{titleStyle.Render("게시글 목록")}
	if m.app.keyword != "" {
		lines = append(lines, metaStyle.Render("검색어: "+m.app.keyword))
	}
	lines = append(lines, "")
	if len(m.app.articles) == 0 {
		lines = append(lines, "게시글이 없습니다.")
	}
	max := m.height - 8
	if max < 5 {
		max = 5
	}
	if len(m.app.articles) < max {
		max = len(m.app.articles)
	}
	titleWidth := clamp(m.width-36, 16, 80)
	for i := 0; i < max; i++ {
		summary := m.app.articles[i]
		prefix := " "
		if i == m.app.selectedIndex {
			prefix = "▸"
		}
		title := truncate(summary.Title, titleWidth)
		if summary.CommentCount > 0 {
			title = fmt.Sprintf("%s (%d)", title, summary.CommentCount)
		}
		line := fmt.Sprintf("%s %s  %s", prefix, title,
			metaStyle.Render(fmt.Sprintf("%s · 조회 %d", summary.CreatedAt.In(time.Local).Format("2006-01-02"), summary.ViewCount)))
		if i == m.app.selectedIndex {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if pagination := m.renderPagination(); pagination != "" {
		lines = append(lines, "", pagination)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}

// renderPagination shows a five-page window around the current page;
// the edge controls disappear at the first and last page.
func (m tuiModel) renderPagination() string {
	if len(m.app.articles) == 0 || m.app.TotalPages() == 0 {
		return ""
	}
	parts := []string{}
	if m.app.HasPrevPage() {
		parts = append(parts, "처음", "이전")
	}
	for _, page := range m.app.PageWindow() {
		label := fmt.Sprintf("%d", page+1)
		if page == m.app.page {
			label = activePage.Render("[" + label + "]")
		}
		parts = append(parts, label)
	}
	if m.app.HasNextPage() {
		parts = append(parts, "다음", "마지막")
	}
	return metaStyle.Render("페이지: ") + strings.Join(parts, " ")
}

func (m tuiModel) renderDetail() string {
	article := m.app.article
	contentWidth := clamp(m.width-6, 20, 100)

	meta := fmt.Sprintf("작성자: %s · 작성일: %s", article.AuthorName, article.CreatedAt.In(time.Local).Format("2006-01-02 15:04"))
	if !article.UpdatedAt.Equal(article.CreatedAt) && !article.UpdatedAt.IsZero() {
		meta += " · 수정일: " + article.UpdatedAt.In(time.Local).Format("2006-01-02 15:04")
	}
	counters := fmt.Sprintf("조회 %d · 좋아요 %d", article.ViewCount, m.app.likeCount)
	likeLabel := "좋아요"
	if m.app.liked {
		likeLabel = "좋아요 취소"
	}

	lines := []string{
		titleStyle.Render(article.Title),
		metaStyle.Render(meta),
		metaStyle.Render(counters),
		"",
	}
	lines = append(lines, wrapText(article.Content, contentWidth)...)
	if len(article.Files) > 0 {
		lines = append(lines, "")
		for _, file := range article.Files {
			lines = append(lines, metaStyle.Render("첨부: "+file.OriginalName))
		}
	}
	lines = append(lines, "", fmt.Sprintf("[l: %s (%d)]", likeLabel, m.app.likeCount))
	if m.app.IsAuthor() {
		lines = append(lines, metaStyle.Render("E - 수정, d - 삭제"))
	}

	lines = append(lines, "", titleStyle.Render(fmt.Sprintf("댓글 %d개", len(m.app.comments))))
	if len(m.app.comments) == 0 {
		lines = append(lines, metaStyle.Render("아직 댓글이 없습니다. 첫 댓글을 작성해보세요!"))
	}
	for i, comment := range m.app.comments {
		prefix := "  "
		if i == m.commentIndex {
			prefix = "▸ "
		}
		header := prefix + comment.AuthorName + " " + metaStyle.Render(comment.CreatedAt.In(time.Local).Format("2006-01-02 15:04"))
		lines = append(lines, header)
		lines = append(lines, "    "+comment.Content)
	}

	viewHeight := m.height - 4
	if viewHeight < 8 {
		viewHeight = 8
	}
	scroll := m.detailScroll
	visible := visibleLines(lines, viewHeight, &scroll)
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(visible, "\n"))
}

func (m tuiModel) renderForm() string {
	heading := "새 게시글 작성"
	if m.app.formArticleID != 0 {
		heading = "게시글 수정"
	}
	lines := []string{titleStyle.Render(heading), ""}

	lines = append(lines, "제목")
	if m.inputMode == inputFormTitle {
		lines = append(lines, m.input.View())
	} else {
		lines = append(lines, "> "+m.formTitle)
	}
	if msg, ok := m.app.FormErrors()["title"]; ok {
		lines = append(lines, errorStyle.Render(msg))
	}
	lines = append(lines, "", "내용")
	lines = append(lines, m.content.View())
	if msg, ok := m.app.FormErrors()["content"]; ok {
		lines = append(lines, errorStyle.Render(msg))
	}
	lines = append(lines, "", metaStyle.Render("ctrl+s - 등록, esc - 취소(임시 저장)"))
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}

func (m tuiModel) renderAuth(heading string) string {
	lines := []string{titleStyle.Render(heading), ""}
	if status := m.app.Status(); status != "" {
		lines = append(lines, errorStyle.Render(status), "")
	}
	lines = append(lines, m.input.View())
	lines = append(lines, "", metaStyle.Render("enter - 다음, esc - 취소"))
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}

func (m tuiModel) renderRegister() string {
	lines := []string{titleStyle.Render("회원가입"), ""}
	for _, field := range []string{"username", "email", "password", "confirmPassword"} {
		if msg, ok := m.registerErrors[field]; ok {
			lines = append(lines, errorStyle.Render(msg))
		}
	}
	if status := m.app.Status(); status != "" {
		lines = append(lines, errorStyle.Render(status))
	}
	lines = append(lines, "", m.input.View())
	lines = append(lines, "", metaStyle.Render("enter - 다음, esc - 취소"))
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}

func (m tuiModel) renderStatusBar() string {
	status := m.app.Status()
	if m.pending {
		spinner := ""
		if len(m.spinnerFrames) > 0 {
			spinner = m.spinnerFrames[m.spinnerIndex] + " "
		}
		status = spinner + "로딩 중..."
	} else if status == "" {
		status = "Ready"
	}
	tip := "? - 도움말"
	padding := m.width - lipgloss.Width(status) - lipgloss.Width(tip) - 2
	if padding < 1 {
		padding = 1
	}
	return statusStyle.Width(m.width).Padding(0, 1).Render(status + strings.Repeat(" ", padding) + tip)
}

func (m tuiModel) renderHelpOverlay() string {
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2).BorderForeground(lipgloss.Color("63"))
	content := []string{
		"단축키",
		"",
		"j/k            - 선택 이동",
		"enter          - 게시글 열기",
		"n/p, g/G       - 페이지 이동",
		"/              - 검색",
		"w              - 글쓰기",
		"l              - 좋아요",
		"c / e / x      - 댓글 작성/수정/삭제",
		"J/K            - 댓글 선택",
		"E / d          - 글 수정/삭제",
		"o / y          - 브라우저로 열기 / 링크 복사",
		"i / r / O      - 로그인 / 회원가입 / 로그아웃",
		"pgup/pgdn      - 스크롤",
		"? 또는 esc     - 닫기",
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box.Render(strings.Join(content, "\n")))
}

func (m tuiModel) renderInputOverlay() string {
	label := m.input.Placeholder
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2).BorderForeground(lipgloss.Color("62"))
	content := label + "\n\n" + m.input.View()
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box.Render(content))
}

// ---- text helpers ----

func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func truncate(value string, width int) string {
	if width < 1 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

func stripNewlines(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func wrapText(text string, width int) []string {
	if width < 1 {
		return []string{""}
	}
	lines := []string{}
	for _, para := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(para)
		if trimmed == "" {
			lines = append(lines, "")
			continue
		}
		words := strings.Fields(trimmed)
		line := ""
		for _, word := range words {
			if line == "" {
				if len(word) > width {
					lines = append(lines, truncate(word, width))
					continue
				}
				line = word
				continue
			}
			if len(line)+1+len(word) > width {
				lines = append(lines, line)
				if len(word) > width {
					lines = append(lines, truncate(word, width))
					line = ""
				} else {
					line = word
				}
				continue
			}
			line = line + " " + word
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func visibleLines(lines []string, height int, scroll *int) []string {
	if height <= 0 {
		return []string{}
	}
	if len(lines) <= height {
		return lines
	}
	maxScroll := len(lines) - height
	if *scroll > maxScroll {
		*scroll = maxScroll
	}
	if *scroll < 0 {
		*scroll = 0
	}
	return lines[*scroll : *scroll+height]
}
