package demo

import (
	"sort"
	"strconv"
	"sync"
	"time"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

type Article struct {
	ID     int
	Title  string
	Source string
	Status string
	Tags   []string
}

type Newsletter struct {
	Subject  string
	Audience string
	ReplyTo  string
	SendOn   time.Time
	Articles []int
}

// Store keeps the demo articles in memory.
type Store struct {
	mu          sync.Mutex
	nextID      int
	articles    []Article
	newsletters []Newsletter
}

func NewStore(seed ...Article) *Store {
	s := &Store{}
	for _, a := range seed {
		s.Add(a)
	}
	return s
}

// Add stores a and returns it with its assigned ID.
func (s *Store) Add(a Article) Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	a.ID = s.nextID
	if a.Status == "" {
		a.Status = StatusDraft
	}
	a.Tags = append([]string(nil), a.Tags...)
	s.articles = append(s.articles, a)
	return a
}

func (s *Store) Articles() []Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Article, len(s.articles))
	copy(out, s.articles)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PublishAll publishes every draft and returns how many changed.
func (s *Store) PublishAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for i := range s.articles {
		if s.articles[i].Status != StatusPublished {
			s.articles[i].Status = StatusPublished
			n++
		}
	}
	return n
}

func (s *Store) Queue(n Newsletter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.Articles = append([]int(nil), n.Articles...)
	s.newsletters = append(s.newsletters, n)
}

func (s *Store) Newsletters() []Newsletter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Newsletter(nil), s.newsletters...)
}

// Rows renders the articles for the change-list table.
func (s *Store) Rows() (columns []string, rows [][]string) {
	columns = []string{"ID", "Title", "Source", "Status"}
	for _, a := range s.Articles() {
		rows = append(rows, []string{strconv.Itoa(a.ID), a.Title, a.Source, a.Status})
	}
	return columns, rows
}
