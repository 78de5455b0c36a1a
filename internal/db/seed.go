package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/util"
)

type seedCategory struct {
	Name        string
	Description string
}

type seedProduct struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Image       string
}

var seedCategories = []seedCategory{
	{Name: "Manga", Description: "Japanese comics"},
	{Name: "Novel", Description: "Long-form fiction"},
	{Name: "Comic", Description: "Western comics"},
}

var seedProducts = []seedProduct{
	{"One Piece Vol. 1", "Japanese manga", 8.5, "Manga", "product1.png"},
	{"Naruto Vol. 1", "Popular ninja manga", 7.99, "Manga", "product2.png"},
	{"Attack on Titan", "Dark fantasy manga", 10.99, "Manga", "product3.png"},
	{"Demon Slayer", "Action manga", 9.99, "Manga", "product4.png"},
	{"ក្មេងប្រយុទ្ធ", "ម៉ង់ហ្គាខ្មែរ", 6.99, "Manga", "product5.png"},

	{"Harry Potter", "Fantasy novel", 12.0, "Novel", "product6.png"},
	{"The Great Gatsby", "Classic novel", 10.5, "Novel", "product7.png"},
	{"1984", "Dystopian novel", 11.99, "Novel", "product8.png"},
	{"The Alchemist", "Inspirational novel", 9.5, "Novel", "product9.png"},
	{"ផ្លូវជីវិត", "ប្រលោមលោកខ្មែរ", 8.99, "Novel", "product10.png"},
	{"បេះដូងអ្នកសរសេរ", "ប្រលោមលោកខ្មែរ", 7.99, "Novel", "product11.png"},

	{"Spider-Man: Homecoming", "Marvel comic", 6.5, "Comic", "product12.png"},
	{"Batman: Killing Joke", "DC comic", 9.0, "Comic", "product13.png"},
	{"Avengers Assemble", "Superhero comic", 8.75, "Comic", "product14.png"},
	{"Iron Man", "Marvel comic", 7.5, "Comic", "product15.png"},
	{"វីរបុរសដ៏អស្ចារ្យ", "កំប្លែងខ្មែរ", 6.25, "Comic", "product16.png"},
	{"Justice League", "DC superhero comic", 9.25, "Comic", "product17.png"},
	{"X-Men", "Mutant comic", 8.99, "Comic", "product18.png"},
	{"Thor", "Marvel comic", 7.99, "Comic", "product19.png"},
	{"Captain America", "Marvel comic", 8.49, "Comic", "product20.png"},
}

// Seed inserts the starter catalog. Categories are upserted by folded name;
// products are only inserted into an empty product table so reruns are safe.
func Seed(ctx context.Context, conn *sqlx.DB, imagePrefix string) error {
	logger := zerolog.Ctx(ctx)

	const upsertCategory = `
        INSERT INTO category (name, name_key, description)
        VALUES ($1, $2, $3)
        ON CONFLICT (name_key) DO UPDATE SET name = category.name
        RETURNING id
    `
	const countProducts = `SELECT COUNT(*) FROM product`
	const insertProduct = `
        INSERT INTO product (name, name_key, description, price, image_url, category_id)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	ids := make(map[string]int64, len(seedCategories))
	for _, c := range seedCategories {
		var id int64
		if err := tx.GetContext(ctx, &id, upsertCategory, c.Name, util.FoldKey(c.Name), c.Description); err != nil {
			return fmt.Errorf("seed category %s: %w", c.Name, err)
		}
		ids[c.Name] = id
	}

	var existing int
	if err := tx.GetContext(ctx, &existing, countProducts); err != nil {
		return err
	}
	if existing > 0 {
		logger.Info().Int("existing", existing).Msg("products already present, skipping product seed")
		return tx.Commit()
	}

	for _, p := range seedProducts {
		imageURL := imagePrefix + "/images/" + p.Image
		if _, err := tx.ExecContext(ctx, insertProduct, p.Name, util.FoldKey(p.Name), p.Description, p.Price, imageURL, ids[p.Category]); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Info().Int("categories", len(seedCategories)).Int("products", len(seedProducts)).Msg("catalog seeded")
	return nil
}
