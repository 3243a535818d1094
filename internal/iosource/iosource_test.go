package iosource_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/aladaia/vocan/internal/iosource"
	"github.com/aladaia/vocan/pkg/corpus"
	"github.com/aladaia/vocan/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func code(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "error should be *gn.Error")
	return gnErr.Code
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want iosource.Format
	}{
		{"reviews.csv", iosource.CSV},
		{"REVIEWS.CSV", iosource.CSV},
		{"stores.yaml", iosource.YAML},
		{"stores.yml", iosource.YAML},
		{"reviews.sqlite", iosource.SQLite},
		{"reviews.db", iosource.SQLite},
		{"reviews.json", iosource.UnknownFormat},
		{"reviews", iosource.UnknownFormat},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, iosource.FormatOf(tt.path))
		})
	}
}

func TestReviewsCSV(t *testing.T) {
	// column order differs from the canonical one, header has a BOM
	data := "\ufeffrating,review_id,text,store_id,date\n" +
		`5,R1,"Merci Sophie Martin, super accueil !",S1,2024-03-01` + "\n" +
		"4.0,R2,  Bon magasin  ,S2,\n" +
		"cinq,R3,Texte,S1,2024-03-02\n" +
		"2,R4,\"Ligne\nsur deux lignes\",S1,2024-03-03\n"
	path := write(t, "reviews.csv", data)

	res, err := iosource.LoadReviews(path)
	require.NoError(t, err)
	require.Len(t, res, 4)

	assert.Equal(t, corpus.Review{
		ReviewID: "R1",
		StoreID:  "S1",
		TextRaw:  "Merci Sophie Martin, super accueil !",
		Rating:   5,
		Date:     "2024-03-01",
	}, res[0])
	assert.Equal(t, "Bon magasin", res[1].TextRaw)
	assert.Equal(t, 4, res[1].Rating)
	assert.Equal(t, "", res[1].Date)
	assert.Equal(t, 0, res[2].Rating, "unparsable rating is left to validation")
	assert.Equal(t, "Ligne\nsur deux lignes", res[3].TextRaw)
}

func TestReviewsCSVInvalidUTF8(t *testing.T) {
	data := "review_id,store_id,text,rating\nR1,S1,caf\xe9 froid,2\n"
	res, err := iosource.LoadReviews(write(t, "reviews.csv", data))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "caf\uFFFD froid", res[0].TextRaw)
}

func TestReviewsCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code gn.ErrorCode
	}{
		{"missing column", "review_id,store_id,text\nR1,S1,ok\n",
			errcode.InputMissingColumnError},
		{"empty file", "", errcode.InputMissingColumnError},
		{"wrong field count", "review_id,store_id,text,rating\nR1,S1,ok\n",
			errcode.InputMalformedRowError},
		{"bare quote", "review_id,store_id,text,rating\nR1,S1,a \"b\" c,5\n",
			errcode.InputMalformedRowError},
		{"empty id", "review_id,store_id,text,rating\n,S1,ok,5\n",
			errcode.InputMalformedRowError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := iosource.LoadReviews(write(t, "reviews.csv", tt.data))
			assert.Equal(t, tt.code, code(t, err))
		})
	}

	t.Run("missing columns are listed", func(t *testing.T) {
		path := write(t, "reviews.csv", "id,text\n")
		_, err := iosource.LoadReviews(path)
		gnErr := err.(*gn.Error)
		assert.Equal(t, "review_id, store_id, rating", gnErr.Vars[1])
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := iosource.LoadReviews(write(t, "reviews.json", "[]"))
		assert.Equal(t, errcode.InputFormatError, code(t, err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := iosource.LoadReviews(filepath.Join(t.TempDir(), "no.csv"))
		assert.Equal(t, errcode.ReadFileError, code(t, err))
	})
}

func TestStoresCSV(t *testing.T) {
	data := "store_id,name,city,zone,latitude,longitude,region\n" +
		"S1,Intersport Bastille,Paris,Paris Intra Muros,48.853,2.369,Île-de-France\n" +
		"S2,Intersport Vélizy,Vélizy,extra-muros,,,Île-de-France\n" +
		"S3,Intersport Lille,Lille,Province,50.63,3.06,Hauts-de-France\n"
	res, err := iosource.LoadStores(write(t, "stores.csv", data))
	require.NoError(t, err)
	require.Len(t, res, 3)

	assert.Equal(t, corpus.Store{
		StoreID:   "S1",
		Name:      "Intersport Bastille",
		City:      "Paris",
		Zone:      corpus.IntraMuros,
		Latitude:  48.853,
		Longitude: 2.369,
		Region:    "Île-de-France",
	}, res[0])
	assert.Equal(t, corpus.ExtraMuros, res[1].Zone)
	assert.Equal(t, 0.0, res[1].Latitude)
	assert.Equal(t, corpus.Province, res[2].Zone)
}

func TestStoresCSVErrors(t *testing.T) {
	head := "store_id,name,city,zone,latitude,longitude,region\n"
	tests := []struct {
		name string
		data string
		code gn.ErrorCode
	}{
		{"bad zone", head + "S1,A,Paris,Banlieue,,,\n", errcode.DataZoneError},
		{"bad latitude", head + "S1,A,Paris,Province,nord,,\n",
			errcode.InputMalformedRowError},
		{"no stores", head, errcode.InputEmptyCorpusError},
		{"missing zone", "store_id,name,city\nS1,A,Paris\n",
			errcode.InputMissingColumnError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := iosource.LoadStores(write(t, "stores.csv", tt.data))
			assert.Equal(t, tt.code, code(t, err))
		})
	}
}

func TestStoresYAML(t *testing.T) {
	data := `stores:
  - store_id: S1
    name: Intersport Bastille
    city: Paris
    zone: IntraMuros
    latitude: 48.853
    longitude: 2.369
    region: Île-de-France
  - store_id: S2
    name: Intersport Grand Littoral
    city: Marseille
    zone: province
    region: Provence-Alpes-Côte d'Azur
`
	res, err := iosource.LoadStores(write(t, "stores.yaml", data))
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Intersport Bastille", res[0].Name)
	assert.Equal(t, corpus.IntraMuros, res[0].Zone)
	assert.Equal(t, 48.853, res[0].Latitude)
	assert.Equal(t, corpus.Province, res[1].Zone)
	assert.Equal(t, "Provence-Alpes-Côte d'Azur", res[1].Region)

	t.Run("bad zone", func(t *testing.T) {
		data := "stores:\n  - store_id: S1\n    zone: Lune\n"
		_, err := iosource.LoadStores(write(t, "stores.yml", data))
		assert.Equal(t, errcode.DataZoneError, code(t, err))
	})

	t.Run("not yaml", func(t *testing.T) {
		_, err := iosource.LoadStores(write(t, "stores.yaml", "stores: [a: b: c"))
		assert.Equal(t, errcode.InputFormatError, code(t, err))
	})
}

func TestReviewsSQLite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping SQLite test in short mode")
	}
	path := filepath.Join(t.TempDir(), "reviews.sqlite")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE reviews (
		review_id TEXT, store_id TEXT, text TEXT, rating INTEGER, date TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO reviews VALUES
		('R1', 'S1', ' Très bon accueil ', 5, '2024-01-02'),
		('R2', 'S2', 'Attente trop longue', 1, NULL),
		('R3', 'S1', NULL, NULL, NULL)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	res, err := iosource.LoadReviews(path)
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, corpus.Review{
		ReviewID: "R1", StoreID: "S1", TextRaw: "Très bon accueil",
		Rating: 5, Date: "2024-01-02",
	}, res[0])
	assert.Equal(t, "", res[1].Date)
	assert.Equal(t, 0, res[2].Rating)
	assert.Equal(t, "", res[2].TextRaw)

	t.Run("missing table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.db")
		db, err := sql.Open("sqlite", path)
		require.NoError(t, err)
		_, err = db.Exec("CREATE TABLE other (id INTEGER)")
		require.NoError(t, err)
		require.NoError(t, db.Close())

		_, err = iosource.LoadReviews(path)
		assert.Equal(t, errcode.InputMissingColumnError, code(t, err))
	})
}
