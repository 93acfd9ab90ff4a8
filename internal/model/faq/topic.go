package faq

// Topic is a predefined FAQ entry shown in the panel's topic picker.
type Topic struct {
	ID       int    `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Response string `json:"response" yaml:"response"`
}

// Link is a static hyperlink placeholder rendered under the panel.
type Link struct {
	Label string `json:"label" yaml:"label"`
	Href  string `json:"href,omitempty" yaml:"href,omitempty"`
}

const (
	// DefaultFallback answers titles that are not in the catalog.
	DefaultFallback = "Sorry, I didn't understand that."
	// DefaultPlaceholder answers every free-text submission.
	DefaultPlaceholder = "This is a bot response."
	// DefaultWelcome is shown above the topic picker.
	DefaultWelcome = "Welcome! I'm here to help you with any queries you have about our membership, resources, events, and social internships."
)

// DefaultLinks are the support placeholders shown under the panel.
func DefaultLinks() []Link {
	return []Link{
		{Label: "Helpdesk"},
		{Label: "Complaint & Support"},
	}
}

// Seed provides the built-in FAQ content used when no catalog file is configured.
func Seed() []Topic {
	return []Topic{
		{ID: 1, Title: "Membership Information", Response: "Our membership program provides access to valuable resources, courses, internships, and events. The fee ensures that members fully engage with these opportunities."},
		{ID: 2, Title: "Refund Policy", Response: "Yes, the membership fee is refundable! You can earn it back by participating in our social internships, events, and conferences."},
		{ID: 3, Title: "200+ Premium Courses", Response: "We offer over 200 premium courses in various domains to boost your skills and knowledge."},
		{ID: 4, Title: "Uni AI", Response: "Uni AI is our advanced AI tool designed to help you excel academically and professionally."},
		{ID: 5, Title: "5000+ Digital Premiums", Response: "Our digital library includes over 5000 resources, from eBooks to design assets."},
		{ID: 6, Title: "Premium Notes", Response: "Access expertly crafted notes for all domains to aid your studies."},
		{ID: 7, Title: "Career Track", Response: "Our career track guides you step by step to become job-ready with essential skills."},
		{ID: 8, Title: "AI Tools for XGrowth", Response: "Use our top AI tools to accelerate your growth in your career and projects."},
		{ID: 9, Title: "TRU Magazine - Eco-Management Pitch Event", Response: "Join our pitch event focused on eco-management and showcase your sustainable practices."},
		{ID: 10, Title: "Eco-Friendly Innovations Pitch", Response: "Present your eco-friendly ideas at our upcoming pitch event."},
		{ID: 11, Title: "Startup & Innovation Summit", Response: "Pitch your startup or innovation to experts and investors at our summit."},
		{ID: 12, Title: "Prevent Animal Cruelty Campaign", Response: "Join us in raising awareness and taking action against animal cruelty."},
		{ID: 13, Title: "Clothes and Food Donation Drive", Response: "Contribute to our drive by donating clothes and food to those in need."},
		{ID: 14, Title: "Social Campaign for Awareness", Response: "Participate in our campaigns to spread awareness about critical societal issues."},
		{ID: 15, Title: "Video Creation", Response: "Create a 3-minute video on an important social issue and share your insights."},
		{ID: 16, Title: "Video Summarization", Response: "Watch 5 videos, summarize the life lessons, and connect them with your experiences."},
		{ID: 17, Title: "Old Clothes Donation", Response: "Donate old clothes, record your experience, and inspire others to do the same."},
		{ID: 18, Title: "Environmental Initiatives", Response: "Collect and send empty milk packets and seeds to support our environmental initiatives."},
		{ID: 19, Title: "Life Lessons Explanation", Response: "Read life lesson chapters by Osho and explain them in your own words."},
		{ID: 20, Title: "Membership Fee", Response: "Why do I have to pay a membership fee? - The fee ensures that students value and utilize the resources effectively."},
		{ID: 21, Title: "Membership Benefits", Response: "What benefits do I get with the membership? - Access to premium courses, internships, events, and more."},
		{ID: 22, Title: "Certification", Response: "Can we get certification for attending events and internships? - Yes, you will receive certifications for participation."},
		{ID: 23, Title: "Partner Support", Response: "How do your partnered organizations help us? - They provide resources, mentorship, and networking opportunities."},
		{ID: 24, Title: "Learning Beyond School", Response: "At UN Francisco, gain practical knowledge and skills that transform your life."},
		{ID: 25, Title: "Skill Development", Response: "Become skilled at what matters and prepare yourself for the real world."},
	}
}
