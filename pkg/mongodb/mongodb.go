package mongodb

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Provider hands out a process-wide mongo client, connected lazily on the
// first request that needs it. A failed connect is not cached, so the next
// request retries the login.
type Provider struct {
	uri string

	mu     sync.Mutex
	client *mongo.Client
}

func NewProvider(uri string) *Provider {
	return &Provider{uri: uri}
}

func (p *Provider) Client(ctx context.Context) (*mongo.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(p.uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logrus.Info("Successfully connected to MongoDB")
	p.client = client
	return p.client, nil
}

func (p *Provider) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil {
		return nil
	}
	err := p.client.Disconnect(ctx)
	p.client = nil
	return err
}
