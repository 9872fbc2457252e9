package news

// NewsItem is one headline as the site renders it.
type NewsItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	PublishTime string `json:"publishTime"`
	URL         string `json:"url"`
	ImageURL    string `json:"imageUrl"`
}

type apiSource struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

type apiArticle struct {
	Source      apiSource `json:"source"`
	Author      *string   `json:"author"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	URL         string    `json:"url"`
	URLToImage  *string   `json:"urlToImage"`
	PublishedAt string    `json:"publishedAt"`
}

type apiResponse struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"totalResults"`
	Articles     []apiArticle `json:"articles"`
	Code         string       `json:"code"`
	Message      string       `json:"message"`
}
