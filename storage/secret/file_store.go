package secret

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FileStore 0600 权限 JSON 文件实现。单机部署下的最小密钥隔离：
// 凭证不进 Redis，不随普通设置导出。
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read secret store: %w", err)
	}

	secrets := make(map[string]string)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &secrets); err != nil {
			return nil, fmt.Errorf("failed to parse secret store: %w", err)
		}
	}
	return secrets, nil
}

func (s *FileStore) save(secrets map[string]string) error {
	data, err := json.Marshal(secrets)
	if err != nil {
		return fmt.Errorf("failed to encode secret store: %w", err)
	}

	// 先写临时文件再改名，避免进程中途退出留下半个文件
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write secret store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace secret store: %w", err)
	}
	return nil
}

func (s *FileStore) GetSecret(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	secrets, err := s.load()
	if err != nil {
		return "", err
	}
	return secrets[name], nil
}

func (s *FileStore) SetSecret(ctx context.Context, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	secrets, err := s.load()
	if err != nil {
		return err
	}
	secrets[name] = value
	return s.save(secrets)
}

func (s *FileStore) RemoveSecret(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	secrets, err := s.load()
	if err != nil {
		return err
	}
	delete(secrets, name)
	return s.save(secrets)
}
