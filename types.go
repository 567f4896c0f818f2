package main

import "time"

// Records mirror the backend JSON shapes verbatim; the client adds no
// fields of its own.

type ArticleSummary struct {
	ArticleID    int64     `json:"articleId"`
	Title        string    `json:"title"`
	WriterID     int64     `json:"writerId"`
	CreatedAt    time.Time `json:"createdAt"`
	ViewCount    int64     `json:"articleViewCount"`
	CommentCount int64     `json:"articleCommentCount"`
}

type Article struct {
	ArticleID  int64         `json:"articleId"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	AuthorID   int64         `json:"authorId"`
	AuthorName string        `json:"authorName"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
	ViewCount  int64         `json:"viewCount"`
	LikeCount  int64         `json:"likeCount"`
	Liked      bool          `json:"liked"`
	Files      []ArticleFile `json:"files"`
}

type ArticleFile struct {
	FileID       int64  `json:"fileId"`
	OriginalName string `json:"originalName"`
}

type ArticlePage struct {
	Articles []ArticleSummary `json:"articles"`
}

type HotArticle struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
	ViewCount  int64     `json:"viewCount"`
	Content    string    `json:"content"`
}

type Comment struct {
	CommentID  int64     `json:"commentId"`
	ArticleID  int64     `json:"articleId"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CommentPage struct {
	Comments []Comment `json:"comments"`
}

// Session is the client's credential record. Login and logout return a
// fresh value instead of mutating shared state; the transport reads
// whatever value it was handed.
type Session struct {
	Token    string `json:"token"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

func (s Session) LoggedIn() bool {
	return s.Token != ""
}

type ArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Upload struct {
	Name string
	Data []byte
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CommentRequest struct {
	ArticleID int64  `json:"articleId"`
	Content   string `json:"content"`
}

type Draft struct {
	ArticleID int64
	Title     string
	Content   string
	SavedAt   time.Time
}
