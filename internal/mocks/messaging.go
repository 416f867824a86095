package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MessagePublisher struct {
	mock.Mock
}

func (m *MessagePublisher) Publish(ctx context.Context, key string, value interface{}) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *MessagePublisher) Close() error {
	return m.Called().Error(0)
}

type DeadLetterPublisher struct {
	mock.Mock
}

func (m *DeadLetterPublisher) PublishToDLQ(ctx context.Context, key string, originalMessageValue []byte, reason string) error {
	return m.Called(ctx, key, originalMessageValue, reason).Error(0)
}

func (m *DeadLetterPublisher) Close() error {
	return m.Called().Error(0)
}

// FileStore mocks the upload store
type FileStore struct {
	mock.Mock
}

func (m *FileStore) Save(r io.Reader, originalName string) (string, error) {
	args := m.Called(r, originalName)
	return args.String(0), args.Error(1)
}

func (m *FileStore) Remove(name string) error {
	return m.Called(name).Error(0)
}

func (m *FileStore) RemoveAll(names []string) {
	m.Called(names)
}
