package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/avoronov/blogkeeper/internal/common"
	"github.com/avoronov/blogkeeper/internal/models"
)

// Show fetches and displays a single post by ID, prompting the user for it.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter post id to show", os.Stdout)
	if err != nil {
		return err
	}

	post, ok := a.posts.GetPostByID(id)
	if !ok {
		printlnFn("No post with id", id)
		return common.ErrNotFound
	}

	printlnFn(post.Title)
	printlnFn("By", post.Author, "in", post.Category, "at", post.CreatedAt.Format("2006-01-02 15:04"))
	if len(post.Tags) > 0 {
		printlnFn("Tags:", strings.Join(post.Tags, ", "))
	}
	printlnFn("")
	printlnFn(post.Content)
	return nil
}

// NewPost collects a title, body, and tags and creates the post. The author
// fields come from the current session.
func (a *App) NewPost(ctx context.Context) error {
	if !a.navigate("/dashboard/create") {
		return nil
	}

	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	if strings.TrimSpace(title) == "" {
		printlnFn("Title is required")
		return errors.New("title is required")
	}
	content, err := GetMultiline(a.reader, "Enter post text (double Enter to finish):", os.Stdout)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Enter category (empty for General)", os.Stdout)
	if err != nil {
		return err
	}
	tags, err := GetTags(a.reader, os.Stdout)
	if err != nil {
		return err
	}

	draft := models.PostDraft{
		Title:    title,
		Content:  content,
		Category: category,
		Tags:     tags,
	}
	if u, ok := a.session.User(); ok {
		draft.Author = u.Name
		draft.AuthorID = u.ID
	}

	post, err := a.posts.CreatePost(ctx, draft)
	if err != nil {
		printlnFn("Create failed:", err.Error())
		return err
	}
	printlnFn("Created post", post.ID)
	return nil
}

// EditPost prompts for a post ID and new field values. Empty answers leave
// the stored value untouched.
func (a *App) EditPost(ctx context.Context) error {
	if !a.navigate("/dashboard/edit") {
		return nil
	}

	id, err := getSimpleText(a.reader, "Enter post id to edit", os.Stdout)
	if err != nil {
		return err
	}
	if _, ok := a.posts.GetPostByID(id); !ok {
		printlnFn("No post with id", id)
		return common.ErrNotFound
	}

	title, err := getSimpleText(a.reader, "New title (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "New post text (double Enter to keep):", os.Stdout)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "New category (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	var patch models.PostPatch
	if title != "" {
		patch.Title = &title
	}
	if content != "" {
		patch.Content = &content
	}
	if category != "" {
		patch.Category = &category
	}

	post, err := a.posts.UpdatePost(ctx, id, patch)
	if err != nil {
		printlnFn("Update failed:", err.Error())
		return err
	}
	printlnFn("Updated post", post.ID)
	return nil
}

// DeletePost prompts for a post ID and removes it. Deleting an unknown id
// is a silent no-op, matching the store semantics.
func (a *App) DeletePost(ctx context.Context) error {
	if !a.navigate("/dashboard") {
		return nil
	}

	id, err := getSimpleText(a.reader, "Enter post id to delete", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.posts.DeletePost(ctx, id); err != nil {
		printlnFn("Delete failed:", err.Error())
		return err
	}
	printlnFn("Deleted")
	return nil
}
