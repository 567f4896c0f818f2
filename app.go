package main

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Route string

const (
	RouteHome     Route = "home"
	RouteList     Route = "list"
	RouteDetail   Route = "detail"
	RouteForm     Route = "form"
	RouteLogin    Route = "login"
	RouteRegister Route = "register"
	RouteNotFound Route = "notfound"
)

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// App owns the session, the current route, and the state each view
// renders. All mutations flow through here so the invalidation table
// fires in exactly one place per mutation kind.
type App struct {
	config Config
	store  *Store
	client *Client
	api    *API
	cache  *Cache

	session Session
	route   Route
	// where to resume after a forced login
	intended Route

	// list view
	page          int
	keyword       string
	articles      []ArticleSummary
	totalCount    int64
	selectedIndex int

	// home view
	hotArticles []HotArticle

	// detail view
	article   Article
	comments  []Comment
	liked     bool
	likeCount int64
	viewed    map[int64]bool

	// form view
	formArticleID int64
	formErrors    map[string]string

	status string
}

func NewApp(cfg Config) (*App, error) {
	store, err := NewStore(cfg.StateDBPath)
	if err != nil {
		return nil, err
	}
	cache, err := NewCache()
	if err != nil {
		return nil, err
	}
	client := NewClient(cfg.APIBaseURL, time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
	app := &App{
		config:     cfg,
		store:      store,
		client:     client,
		api:        NewAPI(client),
		cache:      cache,
		route:      RouteHome,
		intended:   RouteHome,
		viewed:     map[int64]bool{},
		formErrors: map[string]string{},
	}
	session, ok, err := store.Session()
	if err != nil {
		return nil, err
	}
	if ok {
		app.session = session
		client.SetSession(session)
	}
	return app, nil
}

func (a *App) Route() Route {
	return a.route
}

func (a *App) Session() Session {
	return a.session
}

func (a *App) Status() string {
	return a.status
}

// handleAuthExpired is the single supervisor for 401s: clear the stored
// session, remember where the user was headed, and route to login. The
// transport itself never navigates.
func (a *App) handleAuthExpired(err error) bool {
	if !errors.Is(err, ErrAuthExpired) {
		return false
	}
	a.intended = a.route
	a.session = Session{}
	a.client.SetSession(Session{})
	_ = a.store.ClearSession()
	a.route = RouteLogin
	a.status = "로그인이 만료되었습니다. 다시 로그인해주세요."
	return true
}

// ---- home ----

func (a *App) GoHome() {
	a.route = RouteHome
	if err := a.LoadHotArticles(); err != nil {
		a.status = "인기 게시글을 불러오는 데 실패했습니다."
	}
}

func (a *App) LoadHotArticles() error {
	data, err := a.cache.Fetch(hotArticlesKey(), func() (any, error) {
		return a.api.HotArticles()
	})
	if err != nil {
		a.handleAuthExpired(err)
		return err
	}
	a.hotArticles = data.([]HotArticle)
	return nil
}

// ---- list ----

func (a *App) GoList() {
	a.route = RouteList
	a.selectedIndex = 0
	if err := a.LoadArticles(); err != nil && !errors.Is(err, ErrAuthExpired) {
		a.status = "게시글을 불러오는 데 실패했습니다."
	}
}

// LoadArticles renders exactly the server-returned page; the client
// never re-slices.
func (a *App) LoadArticles() error {
	size := a.config.PageSize
	data, err := a.cache.Fetch(articlesKey(a.page, size, a.keyword), func() (any, error) {
		return a.api.ListArticles(a.page, size, a.keyword)
	})
	if err != nil {
		a.handleAuthExpired(err)
		return err
	}
	a.articles = data.(ArticlePage).Articles

	count, err := a.cache.Fetch(articleCountKey(), func() (any, error) {
		return a.api.CountArticles()
	})
	if err != nil {
		a.handleAuthExpired(err)
		return err
	}
	a.totalCount = count.(int64)
	if a.selectedIndex >= len(a.articles) {
		a.selectedIndex = 0
	}
	a.status = fmt.Sprintf("%d건", a.totalCount)
	return nil
}

func (a *App) Search(keyword string) error {
	a.keyword = strings.TrimSpace(keyword)
	a.page = 0
	a.selectedIndex = 0
	return a.LoadArticles()
}

func (a *App) TotalPages() int {
	size := a.config.PageSize
	if size <= 0 || a.totalCount <= 0 {
		return 0
	}
	return int((a.totalCount + int64(size) - 1) / int64(size))
}

func (a *App) SetPage(page int) error {
	if page < 0 || (a.TotalPages() > 0 && page >= a.TotalPages()) {
		return nil
	}
	a.page = page
	a.selectedIndex = 0
	return a.LoadArticles()
}

func (a *App) HasPrevPage() bool {
	return a.page > 0
}

func (a *App) HasNextPage() bool {
	return a.page < a.TotalPages()-1
}

// PageWindow is the sliding run of page numbers around the current
// page, at most five wide, clipped to the valid range.
func (a *App) PageWindow() []int {
	total := a.TotalPages()
	if total == 0 {
		return nil
	}
	window := []int{}
	for i := 0; i < 5; i++ {
		page := a.page - 2 + i
		if page < 0 || page >= total {
			continue
		}
		window = append(window, page)
	}
	return window
}

func (a *App) MoveSelection(delta int) {
	if len(a.articles) == 0 {
		a.selectedIndex = 0
		return
	}
	idx := a.selectedIndex + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(a.articles) {
		idx = len(a.articles) - 1
	}
	a.selectedIndex = idx
}

func (a *App) SelectedArticle() *ArticleSummary {
	if len(a.articles) == 0 || a.selectedIndex < 0 || a.selectedIndex >= len(a.articles) {
		return nil
	}
	summary := a.articles[a.selectedIndex]
	return &summary
}

// ---- detail ----

func (a *App) OpenArticle(id int64) error {
	data, err := a.cache.Fetch(articleKey(id), func() (any, error) {
		return a.api.GetArticle(id)
	})
	if err != nil {
		if a.handleAuthExpired(err) {
			return err
		}
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.Status == 404 {
			a.route = RouteNotFound
			return err
		}
		a.status = "게시글을 불러오는 데 실패했습니다."
		return err
	}
	a.article = data.(Article)
	a.liked = a.article.Liked
	a.likeCount = a.article.LikeCount
	a.route = RouteDetail

	if a.session.LoggedIn() {
		if status, err := a.cache.Fetch(likeStatusKey(id, a.session.UserID), func() (any, error) {
			return a.api.LikeStatus(id, a.session.UserID)
		}); err == nil {
			a.liked = status.(bool)
		}
	}

	if err := a.LoadComments(id); err != nil && !errors.Is(err, ErrAuthExpired) {
		a.status = "댓글을 불러오는 데 실패했습니다."
	}

	// counted at most once per article per detail mount
	if !a.viewed[id] {
		a.viewed[id] = true
		if err := a.api.AddView(id); err == nil {
			a.cache.Invalidate(mutViewAdd)
		}
	}
	if count, err := a.cache.Fetch(viewCountKey(id), func() (any, error) {
		return a.api.ViewCount(id)
	}); err == nil {
		a.article.ViewCount = count.(int64)
	}
	return nil
}

func (a *App) CloseArticle() {
	delete(a.viewed, a.article.ArticleID)
	a.article = Article{}
	a.comments = nil
	a.route = RouteList
}

func (a *App) IsAuthor() bool {
	return a.session.LoggedIn() && a.session.UserID == a.article.AuthorID
}

// ToggleLike flips the flag and counter optimistically, then issues the
// mutation. On failure the flip is rolled back; on success the detail
// tag is invalidated so the next read reconciles with the server.
func (a *App) ToggleLike() error {
	if !a.session.LoggedIn() {
		a.intended = a.route
		a.route = RouteLogin
		a.status = "로그인이 필요한 기능입니다."
		return nil
	}
	id := a.article.ArticleID
	wasLiked := a.liked
	a.liked = !wasLiked
	if wasLiked {
		a.likeCount--
	} else {
		a.likeCount++
	}

	var err error
	if wasLiked {
		err = a.api.UnlikeArticle(id, a.session.UserID)
	} else {
		err = a.api.LikeArticle(id, a.session.UserID)
	}
	if err != nil {
		a.liked = wasLiked
		if wasLiked {
			a.likeCount++
		} else {
			a.likeCount--
		}
		if !a.handleAuthExpired(err) {
			a.status = "좋아요 처리에 실패했습니다."
		}
		return err
	}
	a.cache.Invalidate(mutLikeToggle)
	return a.reloadArticle(id)
}

func (a *App) reloadArticle(id int64) error {
	data, err := a.cache.Fetch(articleKey(id), func() (any, error) {
		return a.api.GetArticle(id)
	})
	if err != nil {
		return err
	}
	a.article = data.(Article)
	a.likeCount = a.article.LikeCount
	return nil
}

func (a *App) DeleteArticle() error {
	if !a.IsAuthor() {
		a.status = "본인이 작성한 글만 삭제할 수 있습니다."
		return nil
	}
	if _, err := a.api.DeleteArticle(a.article.ArticleID); err != nil {
		if !a.handleAuthExpired(err) {
			a.status = "게시글 삭제에 실패했습니다."
		}
		return err
	}
	a.cache.Invalidate(mutArticleWrite)
	delete(a.viewed, a.article.ArticleID)
	a.article = Article{}
	a.comments = nil
	a.GoList()
	a.status = "게시글이 삭제되었습니다."
	return nil
}

// ---- comments ----

func (a *App) LoadComments(articleID int64) error {
	data, err := a.cache.Fetch(commentsKey(articleID), func() (any, error) {
		return a.api.ListComments(articleID, 1, 10)
	})
	if err != nil {
		a.handleAuthExpired(err)
		return err
	}
	a.comments = data.(CommentPage).Comments
	return nil
}

func (a *App) CreateComment(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		a.status = "댓글을 입력하세요"
		return nil
	}
	id := a.article.ArticleID
	if _, err := a.api.CreateComment(CommentRequest{ArticleID: id, Content: content}); err != nil {
		if !a.handleAuthExpired(err) {
			a.status = "댓글 작성에 실패했습니다."
		}
		return err
	}
	a.cache.Invalidate(mutCommentWrite)
	return a.LoadComments(id)
}

func (a *App) UpdateComment(commentID int64, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		a.status = "댓글을 입력하세요"
		return nil
	}
	if _, err := a.api.UpdateComment(commentID, content); err != nil {
		if !a.handleAuthExpired(err) {
			a.status = "댓글 수정에 실패했습니다."
		}
		return err
	}
	a.cache.Invalidate(mutCommentWrite)
	return a.LoadComments(a.article.ArticleID)
}

func (a *App) DeleteComment(commentID int64) error {
	if _, err := a.api.DeleteComment(commentID); err != nil {
		if !a.handleAuthExpired(err) {
			a.status = "댓글 삭제에 실패했습니다."
		}
		return err
	}
	a.cache.Invalidate(mutCommentWrite)
	return a.LoadComments(a.article.ArticleID)
}

func (a *App) CanEditComment(comment Comment) bool {
	return a.session.LoggedIn() && a.session.UserID == comment.AuthorID
}

// ---- article form ----

func (a *App) OpenForm(articleID int64) error {
	if !a.session.LoggedIn() {
		a.intended = RouteForm
		a.formArticleID = articleID
		a.route = RouteLogin
		a.status = "로그인이 필요한 기능입니다."
		return nil
	}
	if articleID != 0 {
		data, err := a.cache.Fetch(articleKey(articleID), func() (any, error) {
			return a.api.GetArticle(articleID)
		})
		if err != nil {
			if !a.handleAuthExpired(err) {
				a.status = "게시글을 불러오는 데 실패했습니다."
			}
			return err
		}
		article := data.(Article)
		if article.AuthorID != a.session.UserID {
			a.status = "본인이 작성한 글만 수정할 수 있습니다."
			return a.OpenArticle(articleID)
		}
		a.article = article
	}
	a.formArticleID = articleID
	a.formErrors = map[string]string{}
	a.route = RouteForm
	return nil
}

func validateArticleForm(title string, content string) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(title) == "" {
		errs["title"] = "제목을 입력해주세요"
	}
	if strings.TrimSpace(content) == "" {
		errs["content"] = "내용을 입력해주세요"
	}
	return errs
}

// SubmitArticle either creates or updates, depending on the form's
// article id. Validation failures never reach the network.
func (a *App) SubmitArticle(title string, content string, files []Upload, deletedFileIDs []int64) (int64, error) {
	a.formErrors = validateArticleForm(title, content)
	if len(a.formErrors) > 0 {
		return 0, nil
	}
	request := ArticleRequest{Title: strings.TrimSpace(title), Content: strings.TrimSpace(content)}

	var ref ArticleRef
	var err error
	if a.formArticleID == 0 {
		ref, err = a.api.CreateArticle(request, files)
	} else {
		ref, err = a.api.UpdateArticle(a.formArticleID, request, files, deletedFileIDs)
	}
	if err != nil {
		if !a.handleAuthExpired(err) {
			a.status = "게시글 저장에 실패했습니다."
		}
		return 0, err
	}
	a.cache.Invalidate(mutArticleWrite)
	_ = a.store.DeleteDraft(a.formArticleID)
	id := ref.ID
	if id == 0 {
		id = a.formArticleID
	}
	a.status = "게시글이 저장되었습니다."
	return id, a.OpenArticle(id)
}

func (a *App) FormErrors() map[string]string {
	return a.formErrors
}

// AbandonForm stashes unsent text as a draft and leaves the form.
func (a *App) AbandonForm(title string, content string) {
	_ = a.store.SaveDraft(Draft{ArticleID: a.formArticleID, Title: title, Content: content})
	if a.formArticleID != 0 {
		_ = a.OpenArticle(a.formArticleID)
		return
	}
	a.GoList()
}

func (a *App) FormDraft() (Draft, bool) {
	draft, ok, err := a.store.Draft(a.formArticleID)
	if err != nil {
		return Draft{}, false
	}
	return draft, ok
}

// ---- auth ----

func (a *App) Login(email string, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		a.status = "이메일과 비밀번호를 모두 입력해주세요"
		return nil
	}
	session, err := a.api.Login(Credentials{Email: email, Password: password})
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.Message != "" {
			a.status = httpErr.Message
		} else {
			a.status = "로그인에 실패했습니다"
		}
		return err
	}
	a.session = session
	a.client.SetSession(session)
	if err := a.store.SaveSession(session); err != nil {
		return err
	}
	a.status = session.Username + "님, 환영합니다."
	a.navigateIntended()
	return nil
}

func (a *App) navigateIntended() {
	switch a.intended {
	case RouteDetail:
		if a.article.ArticleID != 0 {
			_ = a.OpenArticle(a.article.ArticleID)
			return
		}
		a.GoList()
	case RouteForm:
		_ = a.OpenForm(a.formArticleID)
	case RouteList:
		a.GoList()
	default:
		a.GoHome()
	}
	a.intended = RouteHome
}

func validateRegistration(username string, email string, password string, confirm string) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(username) == "" {
		errs["username"] = "사용자 이름을 입력해주세요"
	}
	if strings.TrimSpace(email) == "" {
		errs["email"] = "이메일을 입력해주세요"
	} else if !emailRe.MatchString(email) {
		errs["email"] = "유효한 이메일 주소를 입력해주세요"
	}
	if password == "" {
		errs["password"] = "비밀번호를 입력해주세요"
	} else if len(password) < 6 {
		errs["password"] = "비밀번호는 최소 6자 이상이어야 합니다"
	}
	if password != confirm {
		errs["confirmPassword"] = "비밀번호가 일치하지 않습니다"
	}
	return errs
}

func (a *App) Register(username string, email string, password string, confirm string) (map[string]string, error) {
	errs := validateRegistration(username, email, password, confirm)
	if len(errs) > 0 {
		return errs, nil
	}
	err := a.api.Register(Registration{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.Message != "" {
			a.status = httpErr.Message
		} else {
			a.status = "회원가입에 실패했습니다"
		}
		return nil, err
	}
	a.route = RouteLogin
	a.status = "회원가입이 완료되었습니다. 로그인해주세요."
	return nil, nil
}

func (a *App) Logout() {
	a.session = Session{}
	a.client.SetSession(Session{})
	_ = a.store.ClearSession()
	a.GoHome()
	a.status = "로그아웃되었습니다."
}

// ---- link helpers ----

func (a *App) ArticleWebURL(id int64) string {
	return a.config.WebBaseURL + "/articles/" + strconv.FormatInt(id, 10)
}

func (a *App) OpenSelectedInBrowser() error {
	if a.route == RouteDetail && a.article.ArticleID != 0 {
		return defaultOpenURL(a.ArticleWebURL(a.article.ArticleID))
	}
	if summary := a.SelectedArticle(); summary != nil {
		return defaultOpenURL(a.ArticleWebURL(summary.ArticleID))
	}
	return nil
}

func (a *App) CopySelectedURL() error {
	var id int64
	if a.route == RouteDetail && a.article.ArticleID != 0 {
		id = a.article.ArticleID
	} else if summary := a.SelectedArticle(); summary != nil {
		id = summary.ArticleID
	} else {
		return nil
	}
	if err := copyToClipboard(a.ArticleWebURL(id)); err != nil {
		return err
	}
	a.status = "링크가 복사되었습니다."
	return nil
}

func (a *App) Close() error {
	return a.store.Close()
}
