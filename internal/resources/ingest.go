package resources

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"

	"github.com/furyfist/WellNest/internal/vector/milvus"
	"github.com/furyfist/WellNest/pkg/logger"
	"github.com/furyfist/WellNest/pkg/utils"
)

const (
	chunkTargetChars = 800
	maxEmbedChunks   = 64
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Embedder produces a vector for one chunk of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Ingestor cleans a submitted resource document, stores it, and (when the
// vector store is configured) embeds sentence-aligned chunks for the
// responder's retrieval.
type Ingestor struct {
	store    *Store
	vectorDB *milvus.Client
	embedder Embedder
}

func NewIngestor(store *Store, vectorDB *milvus.Client, embedder Embedder) *Ingestor {
	return &Ingestor{
		store:    store,
		vectorDB: vectorDB,
		embedder: embedder,
	}
}

// Ingest accepts either plain text or HTML content.
func (in *Ingestor) Ingest(ctx context.Context, title, topic, content string) (*Resource, error) {
	cleaned := cleanContent(content)
	if cleaned == "" {
		return nil, fmt.Errorf("no content extracted from document")
	}

	now := time.Now()
	resource := &Resource{
		ID:        utils.HashString(title),
		Title:     title,
		Topic:     topic,
		Content:   cleaned,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := in.store.Upsert(resource); err != nil {
		return nil, err
	}

	if in.vectorDB != nil && in.embedder != nil {
		if err := in.index(ctx, resource); err != nil {
			// Retrieval quality degrades but the resource itself is served.
			logger.Warn("Failed to index resource for retrieval",
				zap.String("resource_id", resource.ID),
				zap.Error(err),
			)
		}
	}

	logger.Info("Resource ingested",
		zap.String("resource_id", resource.ID),
		zap.String("topic", topic),
		zap.Int("content_length", len(cleaned)),
	)

	return resource, nil
}

func (in *Ingestor) index(ctx context.Context, resource *Resource) error {
	chunks, err := chunkSentences(resource.Content)
	if err != nil {
		return fmt.Errorf("failed to chunk content: %w", err)
	}
	if len(chunks) > maxEmbedChunks {
		chunks = chunks[:maxEmbedChunks]
	}

	vectorChunks := make([]milvus.ResourceChunk, 0, len(chunks))
	for i, text := range chunks {
		embedding, err := in.embedder.Embed(ctx, text)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}
		vectorChunks = append(vectorChunks, milvus.ResourceChunk{
			ID:         fmt.Sprintf("%s_chunk_%d", resource.ID, i),
			ResourceID: resource.ID,
			Topic:      resource.Topic,
			Text:       text,
			Embedding:  embedding,
		})
	}

	return in.vectorDB.Insert(ctx, vectorChunks)
}

// cleanContent strips markup and collapses whitespace. Non-HTML input passes
// through with the same whitespace normalization.
func cleanContent(content string) string {
	text := content
	if strings.Contains(content, "<") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
		if err == nil {
			doc.Find("script, style, nav, footer").Remove()
			text = doc.Text()
		}
	}

	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// chunkSentences groups sentences into chunks around chunkTargetChars so an
// embedded chunk never splits mid-sentence.
func chunkSentences(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithTagging(false),
	)
	if err != nil {
		return nil, err
	}

	var chunks []string
	var current strings.Builder
	for _, sentence := range doc.Sentences() {
		if current.Len() > 0 && current.Len()+len(sentence.Text) > chunkTargetChars {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence.Text)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks, nil
}
