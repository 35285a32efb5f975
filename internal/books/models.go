package books

import "strconv"

// Default values for fields the source dataset does not provide
const (
	DefaultAuthor      = "Unknown"
	DefaultGenre       = "General"
	DefaultDescription = "No description available."
	PlaceholderCover   = "https://placehold.co/400x600?text=No+Cover"
)

// Columns is the header of the import file, in output order
var Columns = []string{"Title", "Author", "ISBN", "Genre", "Description", "CoverUrl", "RentalPrice", "Copies"}

// Book is one row of the library bulk-import file
type Book struct {
	Title       string  `json:"title" parquet:"Title"`
	Author      string  `json:"author" parquet:"Author"`
	ISBN        string  `json:"isbn" parquet:"ISBN"`
	Genre       string  `json:"genre" parquet:"Genre"`
	Description string  `json:"description" parquet:"Description"`
	CoverURL    string  `json:"cover_url" parquet:"CoverUrl"`
	RentalPrice float64 `json:"rental_price" parquet:"RentalPrice"`
	Copies      int     `json:"copies" parquet:"Copies"`
}

// Record returns the book as CSV cells in Columns order
func (b *Book) Record() []string {
	return []string{
		b.Title,
		b.Author,
		b.ISBN,
		b.Genre,
		b.Description,
		b.CoverURL,
		FormatPrice(b.RentalPrice),
		strconv.Itoa(b.Copies),
	}
}

// FormatPrice renders a price in its shortest form ("4.5", "7.99")
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
