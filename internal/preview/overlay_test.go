package preview

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pagefx/internal/page"
)

// fakeCMS serves preview data and records every POST.
type fakeCMS struct {
	mu       sync.Mutex
	data     map[string]string
	posts    map[string][]string
	failPost bool
}

func (f *fakeCMS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch r.Method {
	case http.MethodGet:
		body, ok := f.data[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, body)
	case http.MethodPost:
		b, _ := io.ReadAll(r.Body)
		f.posts[r.URL.Path] = append(f.posts[r.URL.Path], string(b))
		if f.failPost {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		io.WriteString(w, `{"ok":true}`)
	}
}

func (f *fakeCMS) postsTo(path string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.posts[path]...)
}

func (f *fakeCMS) setFailPost(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failPost = fail
}

func (f *fakeCMS) postCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.posts {
		n += len(p)
	}
	return n
}

type scriptedEditor struct {
	replies []string
	seen    []string
}

func (e *scriptedEditor) Edit(_ context.Context, text string) (string, error) {
	e.seen = append(e.seen, text)
	if len(e.replies) == 0 {
		return "", errors.New("editor exhausted")
	}
	r := e.replies[0]
	e.replies = e.replies[1:]
	return r, nil
}

var _ = Describe("Overlay", func() {
	var (
		cms     *fakeCMS
		srv     *httptest.Server
		rec     *page.Recorder
		overlay *Overlay
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		cms = &fakeCMS{
			data: map[string]string{
				"/preview/element/42":  `{"pid":"42","text":"hello"}`,
				"/preview/page/about":  `{"elements":[{"pid":"42"}]}`,
				"/preview/element/bad": `not json`,
			},
			posts: map[string][]string{},
		}
		srv = httptest.NewServer(cms)
		rec = &page.Recorder{}
		overlay = NewOverlay(NewClient(srv.URL, srv.Client(), nil), rec, rec, nil)
	})

	AfterEach(func() {
		srv.Close()
	})

	It("starts closed", func() {
		Expect(overlay.State()).To(Equal(Closed))
	})

	Describe("Open", func() {
		It("shows the element data as indented JSON", func() {
			Expect(overlay.Open(ctx, Element("42"))).To(Succeed())
			Expect(overlay.State()).To(Equal(Open))
			Expect(overlay.Target()).To(Equal(Element("42")))
			Expect(overlay.Text()).To(ContainSubstring("\n  \"text\": \"hello\""))
		})

		It("stays closed when the fetch fails", func() {
			Expect(overlay.Open(ctx, Element("missing"))).NotTo(Succeed())
			Expect(overlay.State()).To(Equal(Closed))
		})

		It("stays closed when the server does not answer JSON", func() {
			Expect(overlay.Open(ctx, Element("bad"))).To(MatchError(ErrNotJSON))
			Expect(overlay.State()).To(Equal(Closed))
		})
	})

	Context("when open on an element", func() {
		BeforeEach(func() {
			Expect(overlay.Open(ctx, Element("42"))).To(Succeed())
		})

		It("cancels without any network traffic", func() {
			overlay.Cancel()
			Expect(overlay.State()).To(Equal(Closed))
			Expect(cms.postCount()).To(BeZero())
			Expect(rec.Reloads).To(BeZero())
		})

		It("alerts on invalid JSON and stays open", func() {
			err := overlay.Update(ctx, `{"text": `)
			Expect(err).To(MatchError(ErrInvalidJSON))
			Expect(overlay.State()).To(Equal(Open))
			Expect(overlay.Text()).To(Equal(`{"text": `))
			Expect(rec.Alerts).To(ConsistOf(invalidJSONMessage))
			Expect(cms.postCount()).To(BeZero())
		})

		It("posts exactly once to the element endpoint then closes and reloads", func() {
			Expect(overlay.Update(ctx, "{\n  \"text\": \"bye\"\n}")).To(Succeed())
			Expect(cms.postsTo("/preview/element/42")).To(Equal([]string{`{"text":"bye"}`}))
			Expect(cms.postCount()).To(Equal(1))
			Expect(overlay.State()).To(Equal(Closed))
			Expect(rec.Reloads).To(Equal(1))
		})

		It("stays open when the post fails", func() {
			cms.setFailPost(true)
			err := overlay.Update(ctx, `{"text":"bye"}`)
			var se *StatusError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.StatusCode).To(Equal(http.StatusInternalServerError))
			Expect(overlay.State()).To(Equal(Open))
			Expect(rec.Reloads).To(BeZero())
		})

		Describe("ShowAll", func() {
			It("switches the target to the page", func() {
				Expect(overlay.ShowAll(ctx, "/about")).To(Succeed())
				Expect(overlay.Target()).To(Equal(Page("/about")))
				Expect(overlay.Text()).To(ContainSubstring("elements"))

				Expect(overlay.Update(ctx, `{"elements":[]}`)).To(Succeed())
				Expect(cms.postsTo("/preview/page/about")).To(HaveLen(1))
				Expect(cms.postsTo("/preview/element/42")).To(BeEmpty())
			})

			It("keeps the element when the page fetch fails", func() {
				before := overlay.Text()
				Expect(overlay.ShowAll(ctx, "/nowhere")).NotTo(Succeed())
				Expect(overlay.State()).To(Equal(Open))
				Expect(overlay.Target()).To(Equal(Element("42")))
				Expect(overlay.Text()).To(Equal(before))
			})
		})
	})

	It("refuses updates while closed", func() {
		Expect(overlay.Update(ctx, `{}`)).To(MatchError(ErrClosed))
		Expect(overlay.ShowAll(ctx, "/about")).To(MatchError(ErrClosed))
	})

	Describe("Session", func() {
		It("retries after invalid JSON with the operator's text", func() {
			ed := &scriptedEditor{replies: []string{`{"text":`, `{"text":"fixed"}`}}
			s := &Session{Overlay: overlay, Editor: ed}

			Expect(s.Run(ctx, Element("42"))).To(Succeed())
			Expect(ed.seen).To(HaveLen(2))
			Expect(ed.seen[1]).To(Equal(`{"text":`))
			Expect(rec.Alerts).To(HaveLen(1))
			Expect(cms.postsTo("/preview/element/42")).To(Equal([]string{`{"text":"fixed"}`}))
			Expect(overlay.State()).To(Equal(Closed))
		})

		It("cancels on an empty buffer", func() {
			ed := &scriptedEditor{replies: []string{"  \n"}}
			s := &Session{Overlay: overlay, Editor: ed}

			Expect(s.Run(ctx, Element("42"))).To(Succeed())
			Expect(overlay.State()).To(Equal(Closed))
			Expect(cms.postCount()).To(BeZero())
			Expect(rec.Reloads).To(BeZero())
		})

		It("edits the whole page when asked to show all", func() {
			ed := &scriptedEditor{replies: []string{`{"elements":[]}`}}
			s := &Session{Overlay: overlay, Editor: ed, ShowAll: "about"}

			Expect(s.Run(ctx, Element("42"))).To(Succeed())
			Expect(strings.Contains(ed.seen[0], "elements")).To(BeTrue())
			Expect(cms.postsTo("/preview/page/about")).To(HaveLen(1))
		})

		It("returns the editor error and closes", func() {
			ed := &scriptedEditor{}
			s := &Session{Overlay: overlay, Editor: ed}

			Expect(s.Run(ctx, Element("42"))).To(MatchError("editor exhausted"))
			Expect(overlay.State()).To(Equal(Closed))
		})
	})
})

var _ = Describe("ExternalEditor", func() {
	It("falls back to vi", func() {
		GinkgoT().Setenv("EDITOR", "")
		Expect(NewExternalEditor("").Command).To(Equal("vi"))
	})

	It("prefers the configured command", func() {
		Expect(NewExternalEditor("nano -w").Command).To(Equal("nano -w"))
	})

	It("returns the file contents the command leaves behind", func() {
		ed := NewExternalEditor("true")
		out, err := ed.Edit(context.Background(), `{"a":1}`)
		Expect(err).NotTo(HaveOccurred())
		Expect(json.Valid([]byte(out))).To(BeTrue())
	})
})
