package category

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCategoriesRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		rows := sqlmock.NewRows([]string{"id", "name", "slug", "image_url"}).
			AddRow("c1", "Fruits", "fruits", nil).
			AddRow("c2", "Vegetables", "vegetables", nil)

		mock.ExpectQuery(`SELECT(.|\n)*FROM categories c(.|\n)*ORDER BY c.name ASC(.|\n)*LIMIT \$1 OFFSET \$2`).
			WithArgs(int32(20), int32(0)).
			WillReturnRows(rows)

		categories, err := repo.GetCategories(ctx, nil, nil, nil)
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "fruits", categories[0].Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Filter And Pagination", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		limit := int32(5)
		page := int32(3)
		filter := "fru"

		rows := sqlmock.NewRows([]string{"id", "name", "slug", "image_url"}).
			AddRow("c1", "Fruits", "fruits", nil)

		mock.ExpectQuery(`WHERE c.name ILIKE \$1(.|\n)*LIMIT \$2 OFFSET \$3`).
			WithArgs("%fru%", int32(5), int32(10)).
			WillReturnRows(rows)

		categories, err := repo.GetCategories(ctx, &filter, &limit, &page)
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		rows := sqlmock.NewRows([]string{"id", "name", "slug", "image_url"}).
			AddRow("c1", "Fruits", "fruits", nil)

		mock.ExpectQuery(`SELECT id, name, slug, image_url FROM categories WHERE slug = \$1`).
			WithArgs("fruits").
			WillReturnRows(rows)

		c, err := repo.GetBySlug(ctx, "fruits")
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "Fruits", c.Name)
	})

	t.Run("NotFound Returns Nil", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectQuery(`FROM categories WHERE slug = \$1`).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "image_url"}))

		c, err := repo.GetBySlug(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, c)
	})
}

func TestAddCategoryRepository(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "slug", "image_url"}).
		AddRow("c3", "Dairy & Eggs", "dairy-&-eggs", nil)

	mock.ExpectQuery(`INSERT INTO categories \(name, slug, image_url\)(.|\n)*RETURNING id, name, slug, image_url`).
		WithArgs("Dairy & Eggs", "dairy-&-eggs", nil).
		WillReturnRows(rows)

	c, err := repo.AddCategory(ctx, "Dairy & Eggs", "dairy-&-eggs", nil)
	require.NoError(t, err)
	assert.Equal(t, "c3", c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
