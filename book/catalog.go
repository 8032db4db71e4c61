package book

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

/* Starter catalog used by SeedIfEmpty
 * The built-in list can be replaced by a yaml file for other environments
 */

// catalogFile represents the structure of a catalog yaml file
type catalogFile struct {
	Books []catalogEntry `yaml:"books"`
}

// catalogEntry represents a single book in the yaml file
type catalogEntry struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Genre  string `yaml:"genre"`
	Year   int    `yaml:"year"`
	Cover  string `yaml:"cover"`
}

// StarterCatalog returns the built-in sample catalog
func StarterCatalog() []Book {
	return []Book{
		{Title: "Clean Code", Author: "Robert C. Martin", Genre: "Programming", Year: 2008, Cover: "/covers/clean-code.jpg"},
		{Title: "Harry Potter and the Sorcerer's Stone", Author: "J.K. Rowling", Genre: "Fantasy", Year: 1997, Cover: "/covers/harry-potter.jpg"},
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", Genre: "Fantasy", Year: 1937, Cover: "/covers/hobbit.jpg"},
		{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Genre: "Programming", Year: 1999, Cover: "/covers/pragmatic-programmer.jpg"},
		{Title: "1984", Author: "George Orwell", Genre: "Dystopian", Year: 1949, Cover: "/covers/1984.jpg"},
		{Title: "To Kill a Mockingbird", Author: "Harper Lee", Genre: "Classic", Year: 1960, Cover: "/covers/to-kill-a-mockingbird.jpg"},
		{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Genre: "Classic", Year: 1925, Cover: "/covers/great-gatsby.jpg"},
		{Title: "Clean Architecture", Author: "Robert C. Martin", Genre: "Programming", Year: 2017, Cover: "/covers/clean-architecture.jpg"},
		{Title: "Brave New World", Author: "Aldous Huxley", Genre: "Dystopian", Year: 1932, Cover: "/covers/brave-new-world.jpg"},
	}
}

// LoadCatalog reads and validates a catalog yaml file
func LoadCatalog(filePath string) ([]Book, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog yaml: %w", err)
	}
	if len(file.Books) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no books", filePath)
	}

	books := make([]Book, 0, len(file.Books))
	for i, e := range file.Books {
		if err := validate(e.Title, e.Author, e.Genre, e.Year); err != nil {
			return nil, fmt.Errorf("validating catalog entry %d: %w", i, err)
		}
		books = append(books, Book{
			Title:  e.Title,
			Author: e.Author,
			Genre:  e.Genre,
			Year:   e.Year,
			Cover:  e.Cover,
		})
	}
	return books, nil
}
