package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/maribelsv/showcase/internal/core/domain"
	"github.com/maribelsv/showcase/internal/core/port"
)

var _ port.ProductsStorage = (*ProductsRepository)(nil)

// commentDoc is the stored comment shape inside the comentarios jsonb
// column. Keys match the original document exactly.
type commentDoc struct {
	Mensaje       string `json:"mensaje"`
	UsuarioID     string `json:"usuarioId"`
	UsuarioNombre string `json:"usuarioNombre"`
}

// orderColumns whitelists the caller-specified ordering keys.
var orderColumns = map[string]string{
	"creado": "creado",
	"votos":  "votos",
}

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

func (r ProductsRepository) CreateProduct(
	ctx context.Context, v domain.Product,
) (string, error) {
	const op = "ProductsRepository.CreateProduct"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id := uuid.NewString()
	commentsB, _ := json.Marshal(toCommentDocs(v.Comments))

	query := `
		INSERT INTO productos (
			id, nombre, empresa, url, url_image, descripcion,
			creado, creador_id, creador_nombre, votos, ha_votado, comentarios
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	_, err := r.sqldb.ExecContext(ctx, query,
		id, v.Name, v.Company, v.URL, v.ImageURL, v.Description,
		v.Created, v.Creator.ID, v.Creator.Name,
		v.Votes, v.VotedBy, string(commentsB),
	)
	if err != nil {
		return "", fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return id, nil
}

func (r ProductsRepository) ProductByID(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "ProductsRepository.ProductByID"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT
			id, nombre, empresa, url, url_image, descripcion,
			creado, creador_id, creador_nombre, votos, ha_votado, comentarios
		FROM productos
		WHERE id = $1;`

	v, err := scanProduct(r.sqldb.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (r ProductsRepository) ListProductsOrderedBy(
	ctx context.Context, field string,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ListProductsOrderedBy"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	column, ok := orderColumns[field]
	if !ok {
		column = "creado"
	}

	query := fmt.Sprintf(`
		SELECT
			id, nombre, empresa, url, url_image, descripcion,
			creado, creador_id, creador_nombre, votos, ha_votado, comentarios
		FROM productos
		ORDER BY %s DESC;`, column)

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var vs []domain.Product
	for rows.Next() {
		v, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		vs = append(vs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vs, nil
}

func (r ProductsRepository) UpdateProduct(
	ctx context.Context, id string, patch domain.ProductPatch,
) error {
	const op = "ProductsRepository.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var (
		sets []string
		args []any
	)

	if patch.Votes != nil {
		args = append(args, *patch.Votes)
		sets = append(sets, fmt.Sprintf("votos = $%d", len(args)))
	}
	if patch.VotedBy != nil {
		args = append(args, *patch.VotedBy)
		sets = append(sets, fmt.Sprintf("ha_votado = $%d", len(args)))
	}
	if patch.Comments != nil {
		commentsB, _ := json.Marshal(toCommentDocs(*patch.Comments))
		args = append(args, string(commentsB))
		sets = append(sets, fmt.Sprintf("comentarios = $%d", len(args)))
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE productos SET %s WHERE id = $%d;",
		strings.Join(sets, ", "), len(args),
	)

	res, err := r.sqldb.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

func (r ProductsRepository) DeleteProduct(ctx context.Context, id string) error {
	const op = "ProductsRepository.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.sqldb.ExecContext(ctx, `DELETE FROM productos WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		v         domain.Product
		votedByS  string
		commentsS string
	)

	err := row.Scan(
		&v.ID, &v.Name, &v.Company, &v.URL, &v.ImageURL, &v.Description,
		&v.Created, &v.Creator.ID, &v.Creator.Name,
		&v.Votes, &votedByS, &commentsS,
	)
	if err != nil {
		return domain.Product{}, err
	}

	v.VotedBy = splitArray(votedByS)

	var docs []commentDoc
	if err := json.Unmarshal([]byte(commentsS), &docs); err != nil {
		return domain.Product{}, err
	}
	v.Comments = fromCommentDocs(docs)

	return v, nil
}

// splitArray reads the text form of ha_votado. Elements are generated
// UUID strings, never containing commas, quotes or braces, so the
// naive split is sufficient.
func splitArray(s string) []string {
	s = strings.Trim(s, "{}")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func toCommentDocs(cs []domain.Comment) []commentDoc {
	docs := make([]commentDoc, len(cs))
	for i, c := range cs {
		docs[i] = commentDoc{
			Mensaje:       c.Message,
			UsuarioID:     c.AuthorID,
			UsuarioNombre: c.AuthorName,
		}
	}
	return docs
}

func fromCommentDocs(docs []commentDoc) []domain.Comment {
	cs := make([]domain.Comment, len(docs))
	for i, d := range docs {
		cs[i] = domain.Comment{
			Message:    d.Mensaje,
			AuthorID:   d.UsuarioID,
			AuthorName: d.UsuarioNombre,
		}
	}
	return cs
}
