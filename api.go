package main

import (
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// The backend scopes every article to a board; the client only ever
// shows board 1, same as the web frontend.
const boardID = 1

var timeNow = time.Now

// API wraps the HTTP client with one method per backend operation.
// Paths and payload shapes match the backend exactly; no retries and no
// validation happen at this layer.
type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

// ArticleRef is the create/update response; the backend returns only
// the identifier of the written article.
type ArticleRef struct {
	ID int64 `json:"id"`
}

func (a *API) ListArticles(page int, size int, keyword string) (ArticlePage, error) {
	query := url.Values{}
	query.Set("boardId", strconv.Itoa(boardID))
	// UI pages are 0-based, the backend's are 1-based.
	query.Set("page", strconv.Itoa(page+1))
	query.Set("pageSize", strconv.Itoa(size))
	if keyword != "" {
		query.Set("keyword", keyword)
	}
	blob, err := a.client.send(http.MethodGet, "/v1/articles", query, nil)
	if err != nil {
		return ArticlePage{}, err
	}
	var parsed ArticlePage
	if err := decodeJSON(blob, &parsed); err != nil {
		return ArticlePage{}, err
	}
	return parsed, nil
}

func (a *API) CountArticles() (int64, error) {
	path := "/v1/articles/boards/" + strconv.Itoa(boardID) + "/count"
	blob, err := a.client.send(http.MethodGet, path, nil, nil)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := decodeJSON(blob, &count); err != nil {
		return 0, err
	}
	return count, nil
}

func (a *API) GetArticle(id int64) (Article, error) {
	blob, err := a.client.send(http.MethodGet, "/v1/articles/"+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		return Article{}, err
	}
	var parsed Article
	if err := decodeJSON(blob, &parsed); err != nil {
		return Article{}, err
	}
	return parsed, nil
}

func (a *API) CreateArticle(request ArticleRequest, files []Upload) (ArticleRef, error) {
	blob, err := a.client.sendMultipart(http.MethodPost, "/v1/articles", multipartPayload{
		Request:   request,
		FileField: "files",
		Files:     files,
	})
	if err != nil {
		return ArticleRef{}, err
	}
	var parsed ArticleRef
	if err := decodeJSON(blob, &parsed); err != nil {
		return ArticleRef{}, err
	}
	return parsed, nil
}

func (a *API) UpdateArticle(id int64, request ArticleRequest, newFiles []Upload, deletedFileIDs []int64) (ArticleRef, error) {
	values := map[string][]string{}
	for _, fileID := range deletedFileIDs {
		values["deletedFileIds"] = append(values["deletedFileIds"], strconv.FormatInt(fileID, 10))
	}
	blob, err := a.client.sendMultipart(http.MethodPut, "/v1/articles/"+strconv.FormatInt(id, 10), multipartPayload{
		Request:   request,
		FileField: "newFiles",
		Files:     newFiles,
		Values:    values,
	})
	if err != nil {
		return ArticleRef{}, err
	}
	var parsed ArticleRef
	if err := decodeJSON(blob, &parsed); err != nil {
		return ArticleRef{}, err
	}
	return parsed, nil
}

// DeleteArticle returns the input id so callers can drop cached state
// keyed by it.
func (a *API) DeleteArticle(id int64) (int64, error) {
	_, err := a.client.send(http.MethodDelete, "/v1/articles/"+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (a *API) HotArticles() ([]HotArticle, error) {
	date := timeNow().UTC().Format("2006-01-02")
	blob, err := a.client.send(http.MethodGet, "/v1/hot-articles/articles/date/"+date, nil, nil)
	if err != nil {
		return nil, err
	}
	var parsed []HotArticle
	if err := decodeJSON(blob, &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

func likePath(articleID int64, userID int64) string {
	return "/v1/article-likes/articles/" + strconv.FormatInt(articleID, 10) + "/users/" + strconv.FormatInt(userID, 10)
}

func (a *API) LikeArticle(articleID int64, userID int64) error {
	_, err := a.client.send(http.MethodPost, likePath(articleID, userID), nil, nil)
	return err
}

func (a *API) UnlikeArticle(articleID int64, userID int64) error {
	_, err := a.client.send(http.MethodDelete, likePath(articleID, userID), nil, nil)
	return err
}

func (a *API) LikeStatus(articleID int64, userID int64) (bool, error) {
	blob, err := a.client.send(http.MethodGet, likePath(articleID, userID), nil, nil)
	if err != nil {
		return false, err
	}
	var liked bool
	if err := decodeJSON(blob, &liked); err != nil {
		return false, err
	}
	return liked, nil
}

func (a *API) AddView(articleID int64) error {
	_, err := a.client.send(http.MethodPost, "/v1/article-views/articles/"+strconv.FormatInt(articleID, 10), nil, nil)
	return err
}

func (a *API) ViewCount(articleID int64) (int64, error) {
	blob, err := a.client.send(http.MethodGet, "/v1/article-views/articles/"+strconv.FormatInt(articleID, 10)+"/count", nil, nil)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := decodeJSON(blob, &count); err != nil {
		return 0, err
	}
	return count, nil
}

func (a *API) ListComments(articleID int64, page int, size int) (CommentPage, error) {
	query := url.Values{}
	query.Set("articleId", strconv.FormatInt(articleID, 10))
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(size))
	blob, err := a.client.send(http.MethodGet, "/v1/comments", query, nil)
	if err != nil {
		return CommentPage{}, err
	}
	var parsed CommentPage
	if err := decodeJSON(blob, &parsed); err != nil {
		return CommentPage{}, err
	}
	return parsed, nil
}

func (a *API) CreateComment(request CommentRequest) (Comment, error) {
	blob, err := a.client.send(http.MethodPost, "/v1/comments", nil, request)
	if err != nil {
		return Comment{}, err
	}
	var parsed Comment
	if err := decodeJSON(blob, &parsed); err != nil {
		return Comment{}, err
	}
	return parsed, nil
}

func (a *API) UpdateComment(commentID int64, content string) (Comment, error) {
	body := map[string]string{"content": content}
	blob, err := a.client.send(http.MethodPut, "/v1/comments/"+strconv.FormatInt(commentID, 10), nil, body)
	if err != nil {
		return Comment{}, err
	}
	var parsed Comment
	if err := decodeJSON(blob, &parsed); err != nil {
		return Comment{}, err
	}
	return parsed, nil
}

func (a *API) DeleteComment(commentID int64) (int64, error) {
	_, err := a.client.send(http.MethodDelete, "/v1/comments/"+strconv.FormatInt(commentID, 10), nil, nil)
	if err != nil {
		return 0, err
	}
	return commentID, nil
}

func (a *API) Login(credentials Credentials) (Session, error) {
	blob, err := a.client.send(http.MethodPost, "/auth/login", nil, credentials)
	if err != nil {
		return Session{}, err
	}
	var session Session
	if err := decodeJSON(blob, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (a *API) Register(registration Registration) error {
	_, err := a.client.send(http.MethodPost, "/auth/register", nil, registration)
	return err
}

func (a *API) CurrentUser() (Session, error) {
	blob, err := a.client.send(http.MethodGet, "/auth/user", nil, nil)
	if err != nil {
		return Session{}, err
	}
	var session Session
	if err := decodeJSON(blob, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}
