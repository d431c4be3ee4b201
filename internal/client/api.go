package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	bookModel "book-review-backend/internal/domains/book/model"
	reviewModel "book-review-backend/internal/domains/review/model"
)

const DefaultTimeout = 10 * time.Second

// APIError is a non-2xx response decoded from the server's {message} body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// ReviewInput is the payload for creating or editing a review.
// Empty fields on update keep the stored value.
type ReviewInput struct {
	BookID   string `json:"bookId,omitempty"`
	UserName string `json:"userName,omitempty"`
	Rating   int    `json:"rating,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// APIClient talks to the book review REST API. No retries.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *APIClient) ListBooks(ctx context.Context) ([]bookModel.Book, error) {
	var books []bookModel.Book
	if err := c.do(ctx, http.MethodGet, "/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *APIClient) GetBook(ctx context.Context, id string) (*bookModel.Book, error) {
	var book bookModel.Book
	if err := c.do(ctx, http.MethodGet, "/books/"+id, nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *APIClient) ListBookReviews(ctx context.Context, bookID string) ([]reviewModel.Review, error) {
	var reviews []reviewModel.Review
	if err := c.do(ctx, http.MethodGet, "/books/"+bookID+"/reviews", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *APIClient) CreateReview(ctx context.Context, in ReviewInput) (*reviewModel.Review, error) {
	var review reviewModel.Review
	if err := c.do(ctx, http.MethodPost, "/reviews", in, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *APIClient) UpdateReview(ctx context.Context, id string, in ReviewInput) (*reviewModel.Review, error) {
	var review reviewModel.Review
	if err := c.do(ctx, http.MethodPut, "/reviews/"+id, in, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview returns the id of the book the review belonged to.
func (c *APIClient) DeleteReview(ctx context.Context, id string) (uuid.UUID, error) {
	var resp reviewModel.DeleteReviewResponse
	if err := c.do(ctx, http.MethodDelete, "/reviews/"+id, nil, &resp); err != nil {
		return uuid.Nil, err
	}
	return resp.BookID, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Message != "" {
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
