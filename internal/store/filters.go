package store

import "github.com/amaumene/gomediadex/internal/models"

// VideoFilter narrows video listings. Every method maps to one column of
// videos_view; there is no free-form column input.
type VideoFilter struct {
	f filter
}

func NewVideoFilter() *VideoFilter { return &VideoFilter{} }

func (vf *VideoFilter) Path(op Op, path string) *VideoFilter {
	vf.f.compare("path", op, path)
	return vf
}

func (vf *VideoFilter) MediaType(t models.MediaType) *VideoFilter {
	vf.f.compare("media_type", OpEq, int(t))
	return vf
}

func (vf *VideoFilter) MediaID(op Op, id uint64) *VideoFilter {
	vf.f.compare("media_id", op, id)
	return vf
}

// Unassigned keeps only videos that have no media row yet
func (vf *VideoFilter) Unassigned() *VideoFilter {
	vf.f.null("media_id")
	return vf
}

func (vf *VideoFilter) Codec(op Op, codec string) *VideoFilter {
	vf.f.compare("codec", op, codec)
	return vf
}

func (vf *VideoFilter) Width(op Op, w uint) *VideoFilter {
	vf.f.compare("width", op, w)
	return vf
}

func (vf *VideoFilter) Height(op Op, h uint) *VideoFilter {
	vf.f.compare("height", op, h)
	return vf
}

func (vf *VideoFilter) Duration(op Op, d float64) *VideoFilter {
	vf.f.compare("duration", op, d)
	return vf
}

// MovieFilter narrows movie listings over movies_view
type MovieFilter struct {
	f filter
}

func NewMovieFilter() *MovieFilter { return &MovieFilter{} }

func (mf *MovieFilter) ID(id uint64) *MovieFilter {
	mf.f.compare("id", OpEq, id)
	return mf
}

func (mf *MovieFilter) Title(op Op, title string) *MovieFilter {
	mf.f.compare("title", op, title)
	return mf
}

func (mf *MovieFilter) ReleaseDate(op Op, date string) *MovieFilter {
	mf.f.compare("release_date", op, date)
	return mf
}

func (mf *MovieFilter) VoteAverage(op Op, avg float64) *MovieFilter {
	mf.f.compare("vote_average", op, avg)
	return mf
}

// Cast keeps movies that credit the given person
func (mf *MovieFilter) Cast(personID uint64) *MovieFilter {
	mf.f.subquery("id IN (SELECT movie_id FROM movie_casts WHERE person_id = ?)", personID)
	return mf
}

// Crew keeps movies with a crew credit for the given person
func (mf *MovieFilter) Crew(personID uint64) *MovieFilter {
	mf.f.subquery("id IN (SELECT movie_id FROM movie_crews WHERE person_id = ?)", personID)
	return mf
}

// Genre keeps movies linked to the named genre
func (mf *MovieFilter) Genre(name string) *MovieFilter {
	mf.f.subquery(`id IN (SELECT l.movie_id FROM movie_genre_links l
		JOIN movie_genres g ON g.id = l.genre_id WHERE g.name = ?)`, name)
	return mf
}

// Collection keeps movies belonging to the given collection
func (mf *MovieFilter) Collection(collectionID uint64) *MovieFilter {
	mf.f.subquery("id IN (SELECT movie_id FROM movie_collection_links WHERE collection_id = ?)", collectionID)
	return mf
}

// TvFilter narrows tv listings over tvs_view
type TvFilter struct {
	f filter
}

func NewTvFilter() *TvFilter { return &TvFilter{} }

func (tf *TvFilter) ID(id uint64) *TvFilter {
	tf.f.compare("id", OpEq, id)
	return tf
}

func (tf *TvFilter) Title(op Op, title string) *TvFilter {
	tf.f.compare("title", op, title)
	return tf
}

func (tf *TvFilter) ReleaseDate(op Op, date string) *TvFilter {
	tf.f.compare("release_date", op, date)
	return tf
}

func (tf *TvFilter) VoteAverage(op Op, avg float64) *TvFilter {
	tf.f.compare("vote_average", op, avg)
	return tf
}

// Cast keeps tv shows that credit the given person
func (tf *TvFilter) Cast(personID uint64) *TvFilter {
	tf.f.subquery("id IN (SELECT tv_id FROM tv_casts WHERE person_id = ?)", personID)
	return tf
}

// Genre keeps tv shows linked to the named genre
func (tf *TvFilter) Genre(name string) *TvFilter {
	tf.f.subquery(`id IN (SELECT l.tv_id FROM tv_genre_links l
		JOIN tv_genres g ON g.id = l.genre_id WHERE g.name = ?)`, name)
	return tf
}

// Collection keeps tv shows belonging to the given collection
func (tf *TvFilter) Collection(collectionID uint64) *TvFilter {
	tf.f.subquery("id IN (SELECT tv_id FROM tv_collection_links WHERE collection_id = ?)", collectionID)
	return tf
}

// PersonFilter narrows person listings
type PersonFilter struct {
	f filter
}

func NewPersonFilter() *PersonFilter { return &PersonFilter{} }

func (pf *PersonFilter) Name(op Op, name string) *PersonFilter {
	pf.f.compare("name", op, name)
	return pf
}

func (pf *PersonFilter) Gender(gender int) *PersonFilter {
	pf.f.compare("gender", OpEq, gender)
	return pf
}

// CollectionFilter narrows collection listings over collections_view
type CollectionFilter struct {
	f filter
}

func NewCollectionFilter() *CollectionFilter { return &CollectionFilter{} }

func (cf *CollectionFilter) Name(op Op, name string) *CollectionFilter {
	cf.f.compare("name", op, name)
	return cf
}

func (cf *CollectionFilter) Creator(creator string) *CollectionFilter {
	cf.f.compare("creator", OpEq, creator)
	return cf
}

// Movie keeps collections containing the given movie
func (cf *CollectionFilter) Movie(movieID uint64) *CollectionFilter {
	cf.f.subquery("id IN (SELECT collection_id FROM movie_collection_links WHERE movie_id = ?)", movieID)
	return cf
}

// Tv keeps collections containing the given tv show
func (cf *CollectionFilter) Tv(tvID uint64) *CollectionFilter {
	cf.f.subquery("id IN (SELECT collection_id FROM tv_collection_links WHERE tv_id = ?)", tvID)
	return cf
}
