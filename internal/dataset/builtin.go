package dataset

import "github.com/verte-zerg/sentiboard/internal/model"

// Default returns the built-in social listening dataset.
func Default() *Dataset {
	d, err := New(defaultRecords(), defaultQuotes())
	if err != nil {
		panic(err)
	}
	return d
}

func defaultRecords() []model.Record {
	rec := func(period, platform string, sentiment model.Sentiment, mentions int) model.Record {
		return model.Record{Period: period, Platform: platform, Sentiment: sentiment, Mentions: mentions}
	}
	return []model.Record{
		rec("Feb", "TikTok", model.Positive, 60),
		rec("Feb", "Instagram", model.Neutral, 30),
		rec("Feb", "Reddit", model.Negative, 10),
		rec("Mar", "TikTok", model.Positive, 80),
		rec("Mar", "Instagram", model.Neutral, 20),
		rec("Mar", "Reddit", model.Negative, 15),
		rec("Apr", "TikTok", model.Positive, 70),
		rec("Apr", "Instagram", model.Neutral, 25),
		rec("Apr", "Reddit", model.Negative, 20),
		rec("May", "TikTok", model.Positive, 90),
		rec("May", "Instagram", model.Neutral, 15),
		rec("May", "Reddit", model.Negative, 10),
		rec("Feb", "TikTok", model.Positive, 40),
		rec("Feb", "Instagram", model.Neutral, 50),
		rec("Feb", "Reddit", model.Negative, 20),
		rec("Mar", "TikTok", model.Positive, 50),
		rec("Mar", "Instagram", model.Neutral, 30),
		rec("Mar", "Reddit", model.Negative, 10),
		rec("Apr", "TikTok", model.Positive, 6),
		rec("Apr", "Instagram", model.Neutral, 6),
		rec("Apr", "Reddit", model.Negative, 6),
		rec("May", "Google Reviews", model.Positive, 6),
		rec("May", "Google Reviews", model.Positive, 6),
		rec("May", "Google Reviews", model.Negative, 6),
	}
}

func defaultQuotes() []model.Quote {
	return []model.Quote{
		{
			Platform:  "Instagram",
			Text:      "Quick lunch meals are such a smart campaign. Got my chicken cheque today!",
			Sentiment: model.Positive,
			Campaign:  "Quick Lunch Meal",
			Theme:     "Campaign Engagement",
		},
		{
			Platform:  "Facebook",
			Text:      "Chicken was juicy and the staff checked on us twice — love the service!",
			Sentiment: model.Positive,
			Campaign:  "N/A",
			Theme:     "Service Experience",
		},
		{
			Platform:  "Google Reviews",
			Text:      "Exceptional service by Essa at Nando’s Jurong Point! Found my retainer in the trash. Hero.",
			Sentiment: model.Positive,
			Campaign:  "N/A",
			Theme:     "Service Experience",
		},
		{
			Platform:  "Reddit",
			Text:      "Bit overpriced for what they’re offering. Portion size just not worth it.",
			Sentiment: model.Negative,
			Campaign:  "N/A",
			Theme:     "Portion & Value",
		},
		{
			Platform:  "X (Twitter)",
			Text:      "Nando’s Singapore is my go-to post-gym meal. The pita combos slap.",
			Sentiment: model.Positive,
			Campaign:  "People's Griller",
			Theme:     "Post-Meal Preference",
		},
	}
}
