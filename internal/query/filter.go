package query

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Filter builds the document-store predicate equivalent to Matches. Search
// text is quoted before becoming a regex so user input never changes the
// match semantics.
func (p Params) Filter() bson.M {
	filter := bson.M{}

	if search := p.Search; search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"content": pattern},
			bson.M{"excerpt": pattern},
		}
	}

	if len(p.Tags) > 0 {
		filter["tags"] = bson.M{"$in": p.Tags}
	}

	if p.Published != nil {
		filter["published"] = *p.Published
	}

	return filter
}

// FindOptions returns the sort/skip/limit options for the current page.
// Descending sort places documents without published_at after all documents
// that have one, matching Sort. Params must be normalized first.
func (p Params) FindOptions() *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "published_at", Value: -1}, {Key: "created_at", Value: -1}}).
		SetSkip(int64(p.Offset())).
		SetLimit(int64(p.PageSize))
}
