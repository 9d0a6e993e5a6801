// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"signalist_backend/internal/feature/auth/domain/entity"
	"signalist_backend/internal/feature/auth/usecase"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// userGorm はUserRepositoryインターフェースのGORM実装です。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create はユーザーをデータベースに追加します。
// 同じメールアドレスのユーザーが既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はIDでユーザーを取得します。
func (r *userGorm) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindIDByEmail はメールアドレスからユーザーIDのみを取得します。
// ウォッチリストのメール経由検索で使用されます。
func (r *userGorm) FindIDByEmail(ctx context.Context, email string) (string, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Select("id").Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", usecase.ErrUserNotFound
		}
		return "", err
	}
	return u.ID, nil
}

// isDuplicateKey reports unique-constraint violations, whether or not the
// dialector translated them.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
