package catalog

import "github.com/treykane/cli-gallery/internal/gallery"

// Sample returns the built-in demo portfolio shown when no catalog is
// configured.
func Sample() Catalog {
	items := []gallery.Item{
		{ID: "aurora", Title: "Aurora over Tromsø", Image: "https://images.example.com/aurora.jpg", Category: "landscape", Section: gallery.SectionPhotos, Featured: true, Tags: []string{"night", "norway"}, Date: "2024-01-14",
			Description: "Shot at **-20°C** with a 14mm lens.\n\n- ISO 3200\n- 8s exposure"},
		{ID: "market", Title: "Morning Market", Image: "https://images.example.com/market.jpg", Category: "street", Section: gallery.SectionPhotos, Tags: []string{"people"}, Date: "2024-02-03",
			Description: "Vendors setting up before sunrise."},
		{ID: "portrait-anna", Title: "Anna", Image: "https://images.example.com/anna.jpg", Category: "portrait", Section: gallery.SectionPhotos, Date: "2024-02-20",
			Description: "Window light, single reflector."},
		{ID: "dunes", Title: "Dunes at Noon", Image: "https://images.example.com/dunes.jpg", Category: "landscape", Section: gallery.SectionPhotos, Date: "2024-03-11",
			Description: "Hard light turned into patterns."},
		{ID: "bridge", Title: "Steel Bridge", Image: "https://images.example.com/bridge.jpg", Category: "architecture", Section: gallery.SectionPhotos, Date: "2024-03-28",
			Description: "Long exposure from the riverbank."},
		{ID: "fjord", Title: "Fjord Reflections", Image: "https://images.example.com/fjord.jpg", Category: "landscape", Section: gallery.SectionPhotos, Date: "2024-04-06",
			Description: "Still water, no filter."},
		{ID: "portrait-kai", Title: "Kai", Image: "https://images.example.com/kai.jpg", Category: "portrait", Section: gallery.SectionPhotos, Featured: true, Date: "2024-04-19",
			Description: "Studio session, two lights."},
		{ID: "lens-notes", Title: "Notes on Wide Lenses", Image: "https://images.example.com/lenses.jpg", Category: "gear", Section: gallery.SectionBlog, Tags: []string{"gear"}, Date: "2024-05-02",
			Description: "# Wide lenses\n\nWhy I carry a **14mm** everywhere.\n\n| Lens | Weight |\n|---|---|\n| 14mm | 480g |\n| 24mm | 350g |"},
		{ID: "editing-flow", Title: "My Editing Flow", Image: "https://images.example.com/editing.jpg", Category: "workflow", Section: gallery.SectionBlog, Date: "2024-05-17",
			Description: "Import, cull, grade, export. In that order."},
		{ID: "arctic-week", Title: "A Week Above the Arctic Circle", Image: "https://images.example.com/arctic.jpg", Category: "travel", Section: gallery.SectionStories, Featured: true, Date: "2024-06-01",
			Description: "Seven nights chasing clear skies."},
		{ID: "city-walks", Title: "City Walks", Image: "https://images.example.com/walks.jpg", Category: "travel", Section: gallery.SectionStories, Date: "2024-06-22",
			Description: "Ten kilometres of side streets."},
		{ID: "zine", Title: "Printed Zine", Image: "https://images.example.com/zine.jpg", Category: "print", Section: gallery.SectionProjects, Date: "2024-07-09",
			Description: "Forty pages, risograph, edition of 100."},
	}
	return Catalog{
		Title:   "Sample Portfolio",
		BaseURL: "https://portfolio.example.com",
		Items:   items,
	}
}
