package milvus

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"go.uber.org/zap"

	"github.com/furyfist/WellNest/pkg/logger"
)

const (
	indexNlist   = 1024
	searchNprobe = 16
)

// Client stores embedded resource chunks and serves similarity search for
// the responder's supporting context. Only published resource content goes
// in here; user text is never embedded into the collection.
type Client struct {
	client         client.Client
	collectionName string
	vectorDim      int
}

type ResourceChunk struct {
	ID         string
	ResourceID string
	Topic      string
	Text       string
	Embedding  []float32
}

type ChunkResult struct {
	ChunkID    string
	ResourceID string
	Topic      string
	Text       string
	Score      float32
}

func NewClient(endpoint, collectionName string, vectorDim int) (*Client, error) {
	c, err := client.NewGrpcClient(context.Background(), endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create milvus client: %w", err)
	}

	logger.Info("Milvus client initialized",
		zap.String("endpoint", endpoint),
		zap.String("collection", collectionName),
	)

	return &Client{
		client:         c,
		collectionName: collectionName,
		vectorDim:      vectorDim,
	}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) EnsureCollection(ctx context.Context) error {
	has, err := c.client.HasCollection(ctx, c.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if has {
		return nil
	}

	schema := &entity.Schema{
		CollectionName: c.collectionName,
		Description:    "Mental health resource embeddings",
		Fields: []*entity.Field{
			{
				Name:       "chunk_id",
				DataType:   entity.FieldTypeVarChar,
				PrimaryKey: true,
				TypeParams: map[string]string{"max_length": "64"},
			},
			{
				Name:     "embedding",
				DataType: entity.FieldTypeFloatVector,
				TypeParams: map[string]string{
					"dim": fmt.Sprintf("%d", c.vectorDim),
				},
			},
			{
				Name:       "resource_id",
				DataType:   entity.FieldTypeVarChar,
				TypeParams: map[string]string{"max_length": "64"},
			},
			{
				Name:       "topic",
				DataType:   entity.FieldTypeVarChar,
				TypeParams: map[string]string{"max_length": "128"},
			},
			{
				Name:       "text",
				DataType:   entity.FieldTypeVarChar,
				TypeParams: map[string]string{"max_length": "4096"},
			},
		},
	}

	if err := c.client.CreateCollection(ctx, schema, entity.DefaultShardNumber); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	idx, err := vectorIndex()
	if err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}
	if err := c.client.CreateIndex(ctx, c.collectionName, "embedding", idx, false); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if err := c.client.LoadCollection(ctx, c.collectionName, false); err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}

	logger.Info("Collection created and loaded", zap.String("collection", c.collectionName))
	return nil
}

func (c *Client) Insert(ctx context.Context, chunks []ResourceChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	chunkIDs := make([]string, len(chunks))
	embeddings := make([][]float32, len(chunks))
	resourceIDs := make([]string, len(chunks))
	topics := make([]string, len(chunks))
	texts := make([]string, len(chunks))

	for i, chunk := range chunks {
		chunkIDs[i] = chunk.ID
		embeddings[i] = chunk.Embedding
		resourceIDs[i] = chunk.ResourceID
		topics[i] = chunk.Topic
		texts[i] = chunk.Text
	}

	_, err := c.client.Insert(
		ctx,
		c.collectionName,
		"",
		entity.NewColumnVarChar("chunk_id", chunkIDs),
		entity.NewColumnFloatVector("embedding", c.vectorDim, embeddings),
		entity.NewColumnVarChar("resource_id", resourceIDs),
		entity.NewColumnVarChar("topic", topics),
		entity.NewColumnVarChar("text", texts),
	)
	if err != nil {
		return fmt.Errorf("failed to insert chunks: %w", err)
	}

	if err := c.client.Flush(ctx, c.collectionName, false); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}

	logger.Info("Resource chunks inserted", zap.Int("count", len(chunks)))
	return nil
}

// SearchChunks returns the topK nearest resource chunks.
func (c *Client) SearchChunks(ctx context.Context, embedding []float32, topK int) ([]ChunkResult, error) {
	sp, err := searchParam()
	if err != nil {
		return nil, fmt.Errorf("failed to build search params: %w", err)
	}

	searchResult, err := c.client.Search(
		ctx,
		c.collectionName,
		[]string{},
		"",
		[]string{"chunk_id", "resource_id", "topic", "text"},
		[]entity.Vector{entity.FloatVector(embedding)},
		"embedding",
		entity.L2,
		topK,
		sp,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]ChunkResult, 0)
	for _, sr := range searchResult {
		chunkIDCol := sr.Fields.GetColumn("chunk_id")
		resourceIDCol := sr.Fields.GetColumn("resource_id")
		topicCol := sr.Fields.GetColumn("topic")
		textCol := sr.Fields.GetColumn("text")

		for i := 0; i < sr.ResultCount; i++ {
			chunkID, _ := chunkIDCol.Get(i)
			resourceID, _ := resourceIDCol.Get(i)
			topic, _ := topicCol.Get(i)
			text, _ := textCol.Get(i)

			results = append(results, ChunkResult{
				ChunkID:    chunkID.(string),
				ResourceID: resourceID.(string),
				Topic:      topic.(string),
				Text:       text.(string),
				Score:      sr.Scores[i],
			})
		}
	}

	logger.Debug("Vector search completed",
		zap.Int("topK", topK),
		zap.Int("results", len(results)),
	)

	return results, nil
}

func vectorIndex() (entity.Index, error) {
	return entity.NewIndexIvfFlat(entity.L2, indexNlist)
}

func searchParam() (entity.SearchParam, error) {
	return entity.NewIndexIvfFlatSearchParam(searchNprobe)
}

// Search satisfies the responder's Retriever with plain chunk texts.
func (c *Client) Search(ctx context.Context, embedding []float32, topK int) ([]string, error) {
	results, err := c.SearchChunks(ctx, embedding, topK)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	return texts, nil
}
