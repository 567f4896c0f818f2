package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *API {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAPI(NewClient(server.URL, 5*time.Second))
}

func TestListArticlesQuery(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/articles" || r.Method != http.MethodGet {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("boardId") != "1" {
			t.Fatalf("unexpected boardId %q", query.Get("boardId"))
		}
		// the backend counts pages from 1
		if query.Get("page") != "3" || query.Get("pageSize") != "10" {
			t.Fatalf("unexpected paging %q %q", query.Get("page"), query.Get("pageSize"))
		}
		if query.Get("keyword") != "검색어" {
			t.Fatalf("unexpected keyword %q", query.Get("keyword"))
		}
		writeJSON(w, ArticlePage{Articles: []ArticleSummary{{ArticleID: 1, Title: "글"}}})
	})

	page, err := api.ListArticles(2, 10, "검색어")
	if err != nil {
		t.Fatalf("ListArticles error: %v", err)
	}
	if len(page.Articles) != 1 || page.Articles[0].Title != "글" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestListArticlesOmitsEmptyKeyword(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("keyword") {
			t.Fatalf("expected keyword omitted")
		}
		writeJSON(w, ArticlePage{})
	})
	if _, err := api.ListArticles(0, 10, ""); err != nil {
		t.Fatalf("ListArticles error: %v", err)
	}
}

func TestCountArticles(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/articles/boards/1/count" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		io.WriteString(w, "42")
	})
	count, err := api.CountArticles()
	if err != nil || count != 42 {
		t.Fatalf("CountArticles error: %d %v", count, err)
	}
}

func TestGetArticle(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/articles/7" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, Article{ArticleID: 7, Title: "제목", LikeCount: 3, Liked: true})
	})
	article, err := api.GetArticle(7)
	if err != nil {
		t.Fatalf("GetArticle error: %v", err)
	}
	if article.ArticleID != 7 || article.LikeCount != 3 || !article.Liked {
		t.Fatalf("unexpected article: %+v", article)
	}
}

func TestCreateArticleMultipart(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/articles" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		reader, err := r.MultipartReader()
		if err != nil {
			t.Fatalf("MultipartReader error: %v", err)
		}
		part, err := reader.NextPart()
		if err != nil {
			t.Fatalf("NextPart error: %v", err)
		}
		if part.FormName() != "request" {
			t.Fatalf("expected request part first, got %q", part.FormName())
		}
		if part.Header.Get("Content-Type") != "application/json" {
			t.Fatalf("unexpected request part type %q", part.Header.Get("Content-Type"))
		}
		var request ArticleRequest
		if err := json.NewDecoder(part).Decode(&request); err != nil {
			t.Fatalf("decode request part: %v", err)
		}
		if request.Title != "제목" || request.Content != "내용" {
			t.Fatalf("unexpected request: %+v", request)
		}
		part, err = reader.NextPart()
		if err != nil {
			t.Fatalf("NextPart file error: %v", err)
		}
		if part.FormName() != "files" || part.FileName() != "사진.png" {
			t.Fatalf("unexpected file part %q %q", part.FormName(), part.FileName())
		}
		data, _ := io.ReadAll(part)
		if string(data) != "png-bytes" {
			t.Fatalf("unexpected file data %q", data)
		}
		writeJSON(w, map[string]int64{"id": 11})
	})

	ref, err := api.CreateArticle(ArticleRequest{Title: "제목", Content: "내용"}, []Upload{{Name: "사진.png", Data: []byte("png-bytes")}})
	if err != nil || ref.ID != 11 {
		t.Fatalf("CreateArticle error: %+v %v", ref, err)
	}
}

func TestUpdateArticleMultipart(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/v1/articles/11" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm error: %v", err)
		}
		var request ArticleRequest
		if err := json.Unmarshal([]byte(r.FormValue("request")), &request); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if request.Title != "고친 제목" {
			t.Fatalf("unexpected title %q", request.Title)
		}
		deleted := r.MultipartForm.Value["deletedFileIds"]
		if len(deleted) != 2 || deleted[0] != "5" || deleted[1] != "6" {
			t.Fatalf("unexpected deletedFileIds %v", deleted)
		}
		files := r.MultipartForm.File["newFiles"]
		if len(files) != 1 || files[0].Filename != "new.txt" {
			t.Fatalf("unexpected newFiles %v", files)
		}
		writeJSON(w, map[string]int64{"id": 11})
	})

	ref, err := api.UpdateArticle(11, ArticleRequest{Title: "고친 제목", Content: "내용"},
		[]Upload{{Name: "new.txt", Data: []byte("txt")}}, []int64{5, 6})
	if err != nil || ref.ID != 11 {
		t.Fatalf("UpdateArticle error: %+v %v", ref, err)
	}
}

func TestDeleteArticleReturnsID(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/v1/articles/9" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})
	id, err := api.DeleteArticle(9)
	if err != nil || id != 9 {
		t.Fatalf("DeleteArticle error: %d %v", id, err)
	}
}

func TestHotArticlesUsesTodaysDate(t *testing.T) {
	origNow := timeNow
	t.Cleanup(func() { timeNow = origNow })
	timeNow = func() time.Time {
		return time.Date(2026, 1, 2, 23, 30, 0, 0, time.UTC)
	}

	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/hot-articles/articles/date/2026-01-02" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, []HotArticle{{ID: 1, Title: "인기글"}})
	})
	hot, err := api.HotArticles()
	if err != nil || len(hot) != 1 {
		t.Fatalf("HotArticles error: %+v %v", hot, err)
	}
}

func TestLikeEndpoints(t *testing.T) {
	var gotMethod, gotPath string
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		io.WriteString(w, "true")
	})

	if err := api.LikeArticle(3, 8); err != nil {
		t.Fatalf("LikeArticle error: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/v1/article-likes/articles/3/users/8" {
		t.Fatalf("unexpected like request %s %s", gotMethod, gotPath)
	}

	if err := api.UnlikeArticle(3, 8); err != nil {
		t.Fatalf("UnlikeArticle error: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Fatalf("unexpected unlike method %s", gotMethod)
	}

	liked, err := api.LikeStatus(3, 8)
	if err != nil || !liked {
		t.Fatalf("LikeStatus error: %v %v", liked, err)
	}
	if gotMethod != http.MethodGet {
		t.Fatalf("unexpected status method %s", gotMethod)
	}
}

func TestViewEndpoints(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/article-views/articles/4":
			if r.Method != http.MethodPost {
				t.Fatalf("unexpected method %s", r.Method)
			}
		case "/v1/article-views/articles/4/count":
			io.WriteString(w, "7")
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	if err := api.AddView(4); err != nil {
		t.Fatalf("AddView error: %v", err)
	}
	count, err := api.ViewCount(4)
	if err != nil || count != 7 {
		t.Fatalf("ViewCount error: %d %v", count, err)
	}
}

func TestCommentEndpoints(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v1/comments" && r.Method == http.MethodGet:
			query := r.URL.Query()
			if query.Get("articleId") != "5" || query.Get("page") != "1" || query.Get("pageSize") != "10" {
				t.Fatalf("unexpected query %v", query)
			}
			writeJSON(w, CommentPage{Comments: []Comment{{CommentID: 1, Content: "댓글"}}})
		case r.URL.Path == "/v1/comments" && r.Method == http.MethodPost:
			var request CommentRequest
			_ = json.NewDecoder(r.Body).Decode(&request)
			if request.ArticleID != 5 || request.Content != "새 댓글" {
				t.Fatalf("unexpected request %+v", request)
			}
			writeJSON(w, Comment{CommentID: 2, ArticleID: 5, Content: request.Content})
		case r.URL.Path == "/v1/comments/2" && r.Method == http.MethodPut:
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["content"] != "고친 댓글" {
				t.Fatalf("unexpected body %v", body)
			}
			writeJSON(w, Comment{CommentID: 2, Content: body["content"]})
		case r.URL.Path == "/v1/comments/2" && r.Method == http.MethodDelete:
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	page, err := api.ListComments(5, 1, 10)
	if err != nil || len(page.Comments) != 1 {
		t.Fatalf("ListComments error: %+v %v", page, err)
	}
	comment, err := api.CreateComment(CommentRequest{ArticleID: 5, Content: "새 댓글"})
	if err != nil || comment.CommentID != 2 {
		t.Fatalf("CreateComment error: %+v %v", comment, err)
	}
	comment, err = api.UpdateComment(2, "고친 댓글")
	if err != nil || comment.Content != "고친 댓글" {
		t.Fatalf("UpdateComment error: %+v %v", comment, err)
	}
	id, err := api.DeleteComment(2)
	if err != nil || id != 2 {
		t.Fatalf("DeleteComment error: %d %v", id, err)
	}
}

func TestAuthEndpoints(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var creds Credentials
			_ = json.NewDecoder(r.Body).Decode(&creds)
			if creds.Email != "user@example.com" || creds.Password != "secret" {
				t.Fatalf("unexpected credentials %+v", creds)
			}
			writeJSON(w, Session{Token: "tok", UserID: 8, Username: "tester"})
		case "/auth/register":
			var registration Registration
			_ = json.NewDecoder(r.Body).Decode(&registration)
			if registration.Username != "tester" {
				t.Fatalf("unexpected registration %+v", registration)
			}
		case "/auth/user":
			if r.Header.Get("Authorization") != "Bearer tok" {
				t.Fatalf("expected bearer token, got %q", r.Header.Get("Authorization"))
			}
			writeJSON(w, Session{Token: "tok", UserID: 8, Username: "tester"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	session, err := api.Login(Credentials{Email: "user@example.com", Password: "secret"})
	if err != nil || session.UserID != 8 {
		t.Fatalf("Login error: %+v %v", session, err)
	}
	if err := api.Register(Registration{Username: "tester", Email: "user@example.com", Password: "secret"}); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	api.client.SetSession(session)
	current, err := api.CurrentUser()
	if err != nil || current.Username != "tester" {
		t.Fatalf("CurrentUser error: %+v %v", current, err)
	}
}
