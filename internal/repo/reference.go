package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

// ReferenceRepo serves users and categories. Both lists are read once at
// startup and never change; tasks point at them without any integrity check.
type ReferenceRepo struct {
	users      []model.User
	categories []model.Category
}

func NewReferenceRepo(users []model.User, categories []model.Category) *ReferenceRepo {
	if users == nil {
		users = []model.User{}
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return &ReferenceRepo{users: users, categories: categories}
}

// LoadReferenceRepo reads both lists from JSON files. An empty path or a
// missing file yields an empty list.
func LoadReferenceRepo(usersFile, categoriesFile string) (*ReferenceRepo, error) {
	var users []model.User
	if err := readJSONList(usersFile, &users); err != nil {
		return nil, err
	}
	var categories []model.Category
	if err := readJSONList(categoriesFile, &categories); err != nil {
		return nil, err
	}
	return NewReferenceRepo(users, categories), nil
}

func (r *ReferenceRepo) Users(ctx context.Context) []model.User {
	return slices.Clone(r.users)
}

func (r *ReferenceRepo) Categories(ctx context.Context) []model.Category {
	return slices.Clone(r.categories)
}

func readJSONList(path string, dst any) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
