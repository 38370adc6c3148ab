package usecase

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/confexa/confexa-backoffice/internal/entity"
	"github.com/confexa/confexa-backoffice/internal/infra/repository"
)

// CreateNewsUseCase publica notícia no site. Com imagem anexa, o fluxo é um
// pipeline estrito: sobe a imagem no bucket, depois insere a linha — se o
// insert falhar, a compensação apaga a imagem órfã do bucket.
type CreateNewsUseCase struct {
	Repo    entity.NewsRepositoryInterface
	Storage ObjectStorage
	Guard   *repository.Guard
}

func NewCreateNewsUseCase(
	repo entity.NewsRepositoryInterface,
	storage ObjectStorage,
	guard *repository.Guard,
) *CreateNewsUseCase {
	return &CreateNewsUseCase{Repo: repo, Storage: storage, Guard: guard}
}

type CreateNewsInput struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Body      string `json:"body"`
	Published bool   `json:"published"`

	// Imagem opcional (multipart). Vazio = notícia sem foto.
	Image     []byte `json:"-"`
	ImageName string `json:"-"`
	ImageType string `json:"-"`
}

type CreateNewsOutput struct {
	News      *entity.News `json:"news"`
	LocalOnly bool         `json:"local_only,omitempty"`
}

func (uc *CreateNewsUseCase) Execute(ctx context.Context, input CreateNewsInput) (*CreateNewsOutput, error) {
	news, err := entity.NewNews(input.Title, input.Summary, input.Body)
	if err != nil {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		}
	}

	if input.Published {
		now := time.Now()
		news.Published = true
		news.PublishedAt = &now
	}

	// Sem imagem: escrita simples, coberta pelo fallback local.
	if len(input.Image) == 0 || uc.Storage == nil {
		outcome, err := uc.writeGuarded(ctx, news)
		if err != nil {
			return nil, &TechnicalError{
				Code:    "DATABASE_ERROR",
				Message: "falha ao salvar notícia: " + err.Error(),
			}
		}
		return &CreateNewsOutput{News: news, LocalOnly: outcome.LocalOnly}, nil
	}

	// Com imagem: upload -> insert, com rollback manual do upload. Não tem
	// fallback local aqui: imagem não cabe no store local, e se o bucket
	// caiu o banco provavelmente caiu junto.
	imagePath := fmt.Sprintf("news/%s%s", news.ID, path.Ext(input.ImageName))

	txn := NewTransaction()

	txn.AddOperation("upload_image", func(c context.Context) error {
		url, err := uc.Storage.Upload(imagePath, input.Image, input.ImageType)
		if err != nil {
			return err
		}
		news.ImageURL = url
		return nil
	})

	txn.AddCompensation("delete_image", func(c context.Context) error {
		return uc.Storage.Delete(imagePath)
	})

	txn.AddOperation("insert_news", func(c context.Context) error {
		return uc.Repo.Create(c, news)
	})

	if err := txn.Execute(ctx); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao publicar notícia com imagem: " + err.Error(),
		}
	}

	return &CreateNewsOutput{News: news}, nil
}

func (uc *CreateNewsUseCase) writeGuarded(ctx context.Context, news *entity.News) (repository.Outcome, error) {
	if uc.Guard == nil {
		return repository.Outcome{}, uc.Repo.Create(ctx, news)
	}
	return uc.Guard.Write(ctx, repository.FamilyNews, news, news.ID, func(c context.Context) error {
		return uc.Repo.Create(c, news)
	})
}
