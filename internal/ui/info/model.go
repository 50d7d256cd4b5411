package info

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pawshelter/petcare/internal/render"
)

var titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57")).Bold(true).Padding(1, 1)

// Page is static content written in the same light HTML as pet descriptions.
type Page struct {
	Title string
	Body  string
}

var (
	About = Page{
		Title: "About petcare",
		Body: `<p>We connect cats and dogs with families who will love them.</p>
<p><b>Our values</b></p>
<ul>
<li>Every pet receives the same level of care and attention we'd give to our own</li>
<li>Continuous learning and improvement in pet care practices</li>
<li>Embracing modern techniques and technologies in pet care</li>
</ul>`,
	}

	Services = Page{
		Title: "Our Adoption Process",
		Body: `<ol>
<li><b>Browse Available Pets</b>: explore our selection of cats and dogs looking for their forever homes</li>
<li><b>Submit Application</b>: complete a booking form with your information and preferences</li>
<li><b>Meet Your Pet</b>: schedule a meeting with your potential new family member</li>
<li><b>Bring them home</b>: complete the adoption process and welcome your pet to its new home</li>
</ol>
<p><b>Frequently Asked Questions</b></p>
<p><i>What are the requirements for adopting a pet?</i><br>Requirements typically include being at least 18 years old, verification of a pet-friendly residence, valid identification, and completing our adoption application.</p>
<p><i>Are all pets vaccinated before adoption?</i><br>Yes, all our pets are up-to-date on age-appropriate vaccinations, spayed/neutered, and microchipped prior to adoption.</p>
<p><i>What if the pet doesn't adjust well to my home?</i><br>We offer a 14-day adjustment period with support from our behavior specialists.</p>
<p><i>Do you offer post-adoption support?</i><br>Absolutely! We provide ongoing support including pet care guidance and behavior advice.</p>`,
	}

	Contact = Page{
		Title: "Get in Touch",
		Body: `<ul>
<li>Phone: (555) 123-4567, general inquiries and adoption information</li>
<li>Email: info@petcare.com, we typically respond within 24 hours</li>
<li>Emergency: (555) 999-8888, for after-hours emergencies only</li>
</ul>
<p><i>Can I visit to see the pets before adopting?</i><br>Absolutely! No appointment is necessary during regular business hours.</p>`,
	}
)

// Model renders one static page in a scrollable viewport.
type Model struct {
	page     Page
	viewport viewport.Model
	width    int
	height   int
}

// New creates a view of page.
func New(page Page) Model {
	return Model{page: page, viewport: viewport.New(0, 0)}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = max(h-3, 1)
	m.viewport.SetContent(lipgloss.NewStyle().Padding(0, 1).Render(render.DescriptionText(m.page.Body, w-4)))
}

// Update scrolls the page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(m.page.Title), m.viewport.View())
}
