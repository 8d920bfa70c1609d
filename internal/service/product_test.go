package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
	repoMocks "storeadmin/internal/repository/mocks"
	"storeadmin/internal/storage"
	storeMocks "storeadmin/internal/storage/mocks"
	"storeadmin/internal/validate"
)

func isProductKey(key string) bool {
	return strings.HasPrefix(key, "products/") && strings.HasSuffix(key, ".png")
}

func TestProductService_UploadImage(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		contentType string
		size        int64
		setupMocks  func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockProductRepository, r io.Reader)
		wantErr     error
		wantErrMsg  string
	}{
		{
			name:        "replaces the previous image",
			contentType: "image/png",
			size:        4,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockProductRepository, r io.Reader) {
				mRepo.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1", ImageKey: "products/old.jpg"}, nil).Once()
				mStore.On("Put", ctx, mock.MatchedBy(isProductKey), r, storage.PutObjectOptions{
					Size:        4,
					ContentType: "image/png",
					Metadata:    map[string]string{"product-id": "p-1"},
				}).Return(storage.ObjectInfo{Size: 4}, nil)
				mRepo.On("SetImage", ctx, "p-1", mock.MatchedBy(isProductKey)).Return(nil)
				mStore.On("Delete", ctx, "products/old.jpg").Return(nil)
				mRepo.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1", ImageKey: "products/new.png"}, nil).Once()
			},
		},
		{
			name:        "cleanup failure of the previous image is ignored",
			contentType: "image/png",
			size:        4,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockProductRepository, r io.Reader) {
				mRepo.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1", ImageKey: "products/old.jpg"}, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).Return(storage.ObjectInfo{}, nil)
				mRepo.On("SetImage", ctx, "p-1", mock.Anything).Return(nil)
				mStore.On("Delete", ctx, "products/old.jpg").Return(errors.New("gone"))
			},
		},
		{
			name:        "unsupported type",
			contentType: "application/pdf",
			size:        4,
			setupMocks:  func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockProductRepository, r io.Reader) {},
			wantErr:     storage.ErrUnsupportedType,
		},
		{
			name:        "empty file",
			contentType: "image/png",
			size:        0,
			setupMocks:  func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockProductRepository, r io.Reader) {},
			wantErr:     storage.ErrEmptyFile,
		},
		{
			name:        "unknown product",
			contentType: "image/png",
			size:        4,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockProductRepository, r io.Reader) {
				mRepo.On("FindByID", ctx, "p-1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name:        "db failure removes the new object",
			contentType: "image/png",
			size:        4,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockProductRepository, r io.Reader) {
				mRepo.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1", ImageKey: "products/old.jpg"}, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).Return(storage.ObjectInfo{}, nil)
				mRepo.On("SetImage", ctx, "p-1", mock.Anything).Return(errors.New("db fail"))
				mStore.On("Delete", ctx, mock.MatchedBy(isProductKey)).Return(nil)
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:        "db failure with failed rollback",
			contentType: "image/png",
			size:        4,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockProductRepository, r io.Reader) {
				mRepo.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1"}, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).Return(storage.ObjectInfo{}, nil)
				mRepo.On("SetImage", ctx, "p-1", mock.Anything).Return(errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockProductRepository)
			svc := NewProductService(mStore, mRepo)
			r := strings.NewReader("\x89PNG")
			tt.setupMocks(mStore, mRepo, r)

			p, err := svc.UploadImage(ctx, "p-1", r, "photo.png", tt.contentType, tt.size)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.ErrorContains(t, err, tt.wantErrMsg)
			default:
				require.NoError(t, err)
				assert.NotNil(t, p)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the image after the row", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockProductRepository)
		mRepo.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1", ImageKey: "products/a.png"}, nil)
		mRepo.On("Delete", ctx, "p-1").Return(nil)
		mStore.On("Delete", ctx, "products/a.png").Return(nil)

		require.NoError(t, NewProductService(mStore, mRepo).Delete(ctx, "p-1"))
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("ordered products are kept", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockProductRepository)
		mRepo.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1", ImageKey: "products/a.png"}, nil)
		mRepo.On("Delete", ctx, "p-1").Return(repository.ErrReferenced)

		err := NewProductService(mStore, mRepo).Delete(ctx, "p-1")
		assert.ErrorIs(t, err, ErrInUse)
		mStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestProductService_CreateValidation(t *testing.T) {
	mRepo := new(repoMocks.MockProductRepository)
	svc := NewProductService(nil, mRepo)

	_, err := svc.Create(context.Background(), ProductInput{Name: "  ", PriceCents: -1})
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["price_cents"])
	mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_CreateNormalizes(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockProductRepository)
	mRepo.On("Create", ctx, mock.MatchedBy(func(p *model.Product) bool {
		return p.Name == "Mug" && p.Category == "kitchen" && p.ID != ""
	})).Return(&model.Product{ID: "p-1", Name: "Mug"}, nil)

	p, err := NewProductService(nil, mRepo).Create(ctx, ProductInput{Name: " Mug ", Category: " Kitchen", PriceCents: 1500, Stock: 3})
	require.NoError(t, err)
	assert.Equal(t, "p-1", p.ID)
	mRepo.AssertExpectations(t)
}

func TestProductService_ImageURL(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	mRepo := new(repoMocks.MockProductRepository)
	mRepo.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1", ImageKey: "products/a.png"}, nil)
	mRepo.On("FindByID", ctx, "p-2").Return(&model.Product{ID: "p-2"}, nil)
	mStore.On("PresignGet", ctx, "products/a.png", ImageURLExpiry).Return("https://signed", nil)

	svc := NewProductService(mStore, mRepo)
	url, err := svc.ImageURL(ctx, "p-1", false)
	require.NoError(t, err)
	assert.Equal(t, "https://signed", url)

	_, err = svc.ImageURL(ctx, "p-2", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductService_Visible(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockProductRepository)
	mRepo.On("FindByID", ctx, "p-live").Return(&model.Product{ID: "p-live"}, nil)
	mRepo.On("FindByID", ctx, "p-old").Return(&model.Product{ID: "p-old", IsArchived: true, ImageKey: "products/old.png"}, nil)
	mStore := new(storeMocks.MockStorage)
	mStore.On("PresignGet", ctx, "products/old.png", ImageURLExpiry).Return("https://signed", nil)
	svc := NewProductService(mStore, mRepo)

	p, err := svc.Visible(ctx, "p-live", false)
	require.NoError(t, err)
	assert.Equal(t, "p-live", p.ID)

	_, err = svc.Visible(ctx, "p-old", false)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.ImageURL(ctx, "p-old", false)
	assert.ErrorIs(t, err, ErrNotFound)

	p, err = svc.Visible(ctx, "p-old", true)
	require.NoError(t, err)
	assert.True(t, p.IsArchived)
	url, err := svc.ImageURL(ctx, "p-old", true)
	require.NoError(t, err)
	assert.Equal(t, "https://signed", url)
}
