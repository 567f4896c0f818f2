package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Run drives the App from a line-oriented command stream; it is the
// front end used when stdin or stdout is not a terminal, which is also
// what makes the client scriptable.
func Run(app *App, in io.Reader, out io.Writer) error {
	app.GoHome()
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, render(app))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := handleCommand(app, line, out); err != nil {
			fmt.Fprintln(out, "error:", err)
		}
		if line == "q" || line == "quit" {
			break
		}
		fmt.Fprintln(out, render(app))
	}
	return scanner.Err()
}

func handleCommand(app *App, line string, out io.Writer) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))
	switch parts[0] {
	case "q", "quit":
		return nil
	case "home":
		app.GoHome()
	case "list":
		app.GoList()
	case "page":
		if len(parts) < 2 {
			return fmt.Errorf("missing page number")
		}
		page, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("invalid page number: %q", parts[1])
		}
		return app.SetPage(page)
	case "next":
		if app.HasNextPage() {
			return app.SetPage(app.page + 1)
		}
	case "prev":
		if app.HasPrevPage() {
			return app.SetPage(app.page - 1)
		}
	case "search":
		return app.Search(rest)
	case "j", "down":
		app.MoveSelection(1)
	case "k", "up":
		app.MoveSelection(-1)
	case "open", "enter":
		if len(parts) >= 2 {
			id, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				app.route = RouteNotFound
				return nil
			}
			return app.OpenArticle(id)
		}
		if summary := app.SelectedArticle(); summary != nil {
			return app.OpenArticle(summary.ArticleID)
		}
	case "back":
		app.CloseArticle()
	case "like":
		return app.ToggleLike()
	case "comment":
		return app.CreateComment(rest)
	case "edit-comment":
		if len(parts) < 3 {
			return fmt.Errorf("usage: edit-comment <id> <content>")
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid comment id: %q", parts[1])
		}
		return app.UpdateComment(id, strings.TrimSpace(strings.TrimPrefix(rest, parts[1])))
	case "delete-comment":
		if len(parts) < 2 {
			return fmt.Errorf("usage: delete-comment <id>")
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid comment id: %q", parts[1])
		}
		return app.DeleteComment(id)
	case "post":
		title, content := splitTitleContent(rest)
		if err := app.OpenForm(0); err != nil {
			return err
		}
		if app.route != RouteForm {
			return nil
		}
		_, err := app.SubmitArticle(title, content, nil, nil)
		return err
	case "edit":
		if len(parts) < 2 {
			return fmt.Errorf("usage: edit <id> <title> | <content>")
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid article id: %q", parts[1])
		}
		if err := app.OpenForm(id); err != nil {
			return err
		}
		if app.route != RouteForm {
			return nil
		}
		title, content := splitTitleContent(strings.TrimSpace(strings.TrimPrefix(rest, parts[1])))
		_, err = app.SubmitArticle(title, content, nil, nil)
		return err
	case "delete":
		return app.DeleteArticle()
	case "login":
		if len(parts) < 3 {
			return app.Login("", "")
		}
		return app.Login(parts[1], parts[2])
	case "register":
		if len(parts) < 5 {
			_, err := app.Register("", "", "", "")
			return err
		}
		_, err := app.Register(parts[1], parts[2], parts[3], parts[4])
		return err
	case "logout":
		app.Logout()
	case "o", "browse":
		return app.OpenSelectedInBrowser()
	case "y", "copy":
		return app.CopySelectedURL()
	case "?", "help":
		fmt.Fprintln(out, helpText())
	}
	return nil
}

func splitTitleContent(input string) (string, string) {
	parts := strings.SplitN(input, "|", 2)
	title := strings.TrimSpace(parts[0])
	content := ""
	if len(parts) == 2 {
		content = strings.TrimSpace(parts[1])
	}
	return title, content
}

func render(app *App) string {
	switch app.route {
	case RouteHome:
		return renderHome(app)
	case RouteList:
		return renderList(app)
	case RouteDetail:
		return renderDetail(app)
	case RouteForm:
		return renderFormErrors(app)
	case RouteLogin:
		return "[로그인] login <email> <password>  |  register 이동: register\n" + app.status
	case RouteRegister:
		return "[회원가입] register <username> <email> <password> <confirm>\n" + app.status
	case RouteNotFound:
		return "페이지를 찾을 수 없습니다."
	default:
		return app.status
	}
}

func renderHome(app *App) string {
	lines := []string{"KUKE 게시판", "", "인기 게시글"}
	if len(app.hotArticles) == 0 {
		lines = append(lines, "(없음)")
	}
	for _, hot := range app.hotArticles {
		lines = append(lines, fmt.Sprintf("[%d] %s - %s (조회 %d)", hot.ID, hot.Title, hot.AuthorName, hot.ViewCount))
	}
	lines = append(lines, "", app.status)
	return strings.Join(lines, "\n")
}

func renderList(app *App) string {
	lines := []string{"게시글 목록"}
	if app.keyword != "" {
		lines = append(lines, "검색어: "+app.keyword)
	}
	if len(app.articles) == 0 {
		lines = append(lines, "게시글이 없습니다.")
	}
	for i, summary := range app.articles {
		prefix := " "
		if i == app.selectedIndex {
			prefix = ">"
		}
		title := summary.Title
		if summary.CommentCount > 0 {
			title = fmt.Sprintf("%s (%d)", title, summary.CommentCount)
		}
		lines = append(lines, fmt.Sprintf("%s [%d] %s · 조회 %d", prefix, summary.ArticleID, title, summary.ViewCount))
	}
	if total := app.TotalPages(); total > 0 && len(app.articles) > 0 {
		lines = append(lines, fmt.Sprintf("페이지 %d/%d", app.page+1, total))
	}
	lines = append(lines, app.status)
	return strings.Join(lines, "\n")
}

func renderDetail(app *App) string {
	article := app.article
	liked := "좋아요"
	if app.liked {
		liked = "좋아요 취소"
	}
	lines := []string{
		article.Title,
		fmt.Sprintf("작성자: %s · 조회 %d · 좋아요 %d", article.AuthorName, article.ViewCount, app.likeCount),
		"",
		article.Content,
		"",
		fmt.Sprintf("[%s]", liked),
		fmt.Sprintf("댓글 %d개", len(app.comments)),
	}
	if len(app.comments) == 0 {
		lines = append(lines, "아직 댓글이 없습니다. 첫 댓글을 작성해보세요!")
	}
	for _, comment := range app.comments {
		lines = append(lines, fmt.Sprintf("(%d) %s: %s", comment.CommentID, comment.AuthorName, comment.Content))
	}
	lines = append(lines, app.status)
	return strings.Join(lines, "\n")
}

func renderFormErrors(app *App) string {
	lines := []string{"게시글 작성"}
	for _, field := range []string{"title", "content"} {
		if msg, ok := app.formErrors[field]; ok {
			lines = append(lines, msg)
		}
	}
	lines = append(lines, app.status)
	return strings.Join(lines, "\n")
}

func helpText() string {
	return strings.Join([]string{
		"home / list / open <id> / back",
		"page <n> / next / prev / search <keyword>",
		"j / k        - 선택 이동",
		"like         - 좋아요 토글",
		"comment <내용> / edit-comment <id> <내용> / delete-comment <id>",
		"post <제목> | <내용> / edit <id> <제목> | <내용> / delete",
		"login <email> <password> / register <이름> <email> <pw> <pw확인> / logout",
		"o - 브라우저로 열기, y - 링크 복사, q - 종료",
	}, "\n")
}
